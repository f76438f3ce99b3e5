package get_appointment

import "errors"

var (
	ErrInvalidAppointmentID = errors.New("get_appointment: invalid appointment id")
	ErrAppointmentNotFound  = errors.New("get_appointment: appointment not found")
	ErrInternal             = errors.New("get_appointment: internal error")
)
