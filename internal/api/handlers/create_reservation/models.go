package create_reservation

import (
	"fmt"
	"time"

	holdSlot "github.com/m04kA/SMC-ScheduleService/internal/usecase/hold_slot"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ServiceID   int64  `json:"serviceId"`
	StartTime   string `json:"startTime"` // RFC3339
	HolderToken string `json:"holderToken,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом времени)
func (r *CreateReservationRequest) ToUseCaseRequest() (holdSlot.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return holdSlot.Request{}, fmt.Errorf("parse startTime: %w", err)
	}

	return holdSlot.Request{
		ServiceID:   r.ServiceID,
		StartTime:   start,
		HolderToken: r.HolderToken,
	}, nil
}
