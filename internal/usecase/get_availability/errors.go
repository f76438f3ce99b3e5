package get_availability

import "errors"

var (
	ErrInvalidServiceID = errors.New("get_availability: invalid service id")
	ErrInvalidDate      = errors.New("get_availability: invalid date")
	ErrDateInPast       = errors.New("get_availability: date is in the past")
	ErrDateTooFar       = errors.New("get_availability: date exceeds advance booking window")
	ErrInvalidTimezone  = errors.New("get_availability: invalid timezone")
	ErrServiceNotFound  = errors.New("get_availability: service not found")
	ErrInternal         = errors.New("get_availability: internal error")
)
