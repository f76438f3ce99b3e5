package hold_slot

import "errors"

var (
	ErrInvalidServiceID     = errors.New("hold_slot: invalid service id")
	ErrInvalidStartTime     = errors.New("hold_slot: invalid start time")
	ErrServiceNotFound      = errors.New("hold_slot: service not found")
	ErrOutsideBusinessHours = errors.New("hold_slot: start time is outside business hours")
	ErrLeadTimeViolation    = errors.New("hold_slot: start time violates minimum lead time")
	ErrDateTooFar           = errors.New("hold_slot: date exceeds advance booking window")
	ErrSlotNotAvailable     = errors.New("hold_slot: slot is not available")
	ErrInternal             = errors.New("hold_slot: internal error")
)
