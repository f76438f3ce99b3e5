package update_calendar_config

import "errors"

var (
	ErrInvalidConfig = errors.New("update_calendar_config: invalid config")
	ErrInternal      = errors.New("update_calendar_config: internal error")
)
