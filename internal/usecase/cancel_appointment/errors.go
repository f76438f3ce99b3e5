package cancel_appointment

import "errors"

var (
	ErrInvalidAppointmentID = errors.New("cancel_appointment: invalid appointment id")
	ErrInvalidReason        = errors.New("cancel_appointment: invalid cancellation reason")
	ErrAppointmentNotFound  = errors.New("cancel_appointment: appointment not found")
	ErrNotCancellable       = errors.New("cancel_appointment: appointment cannot be cancelled")
	ErrInternal             = errors.New("cancel_appointment: internal error")
)
