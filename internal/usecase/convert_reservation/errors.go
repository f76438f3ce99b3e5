package convert_reservation

import "errors"

var (
	ErrInvalidReservationID = errors.New("convert_reservation: invalid reservation id")
	ErrInvalidCustomer      = errors.New("convert_reservation: invalid customer data")
	ErrReservationNotFound  = errors.New("convert_reservation: reservation not found")
	ErrWrongHolder          = errors.New("convert_reservation: holder token mismatch")
	ErrReservationExpired   = errors.New("convert_reservation: reservation expired")
	ErrInternal             = errors.New("convert_reservation: internal error")
)
