package release_reservation

import "errors"

var (
	ErrInvalidReservationID = errors.New("release_reservation: invalid reservation id")
	ErrWrongHolder          = errors.New("release_reservation: holder token mismatch")
	ErrInternal             = errors.New("release_reservation: internal error")
)
