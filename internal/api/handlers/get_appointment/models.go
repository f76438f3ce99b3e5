package get_appointment

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64      `json:"id"`
	ServiceID       int64      `json:"serviceId"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         time.Time  `json:"endTime"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`
	CustomerName    string     `json:"customerName"`
	CustomerEmail   string     `json:"customerEmail"`
	CustomerPhone   *string    `json:"customerPhone,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	CancelReason    *string    `json:"cancellationReason,omitempty"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              appt.ID,
		ServiceID:       appt.ServiceID,
		StartTime:       appt.ScheduledAt,
		EndTime:         appt.EndsAt(),
		DurationMinutes: appt.DurationMinutes,
		Status:          string(appt.Status),
		CustomerName:    appt.CustomerName,
		CustomerEmail:   appt.CustomerEmail,
		CustomerPhone:   appt.CustomerPhone,
		Notes:           appt.Notes,
		CancelReason:    appt.CancellationReason,
		CancelledAt:     appt.CancelledAt,
		CreatedAt:       appt.CreatedAt,
	}
}
