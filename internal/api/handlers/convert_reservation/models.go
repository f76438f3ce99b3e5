package convert_reservation

import (
	convertReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/convert_reservation"
)

// ConvertReservationRequest HTTP request model
type ConvertReservationRequest struct {
	HolderToken   string  `json:"holderToken"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConvertReservationRequest) ToUseCaseRequest(reservationID int64) convertReservation.Request {
	return convertReservation.Request{
		ReservationID: reservationID,
		HolderToken:   r.HolderToken,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
	}
}
