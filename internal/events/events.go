package events

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Типы доменных событий движка.
// События потребляют внешние коллабораторы (уведомления, CRM, оплата);
// движок их только публикует и не зависит от их доступности.
const (
	TypeAppointmentCreated   = "appointment.created"
	TypeAppointmentCancelled = "appointment.cancelled"
	TypeReservationExpired   = "reservation.expired"
)

// Event доменное событие движка расписания
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`

	ServiceID     int64     `json:"serviceId"`
	ScheduledAt   time.Time `json:"scheduledAt"`
	AppointmentID *int64    `json:"appointmentId,omitempty"`
	ReservationID *int64    `json:"reservationId,omitempty"`
	Status        string    `json:"status,omitempty"`
}

// AppointmentCreated строит событие создания бронирования
func AppointmentCreated(appt *domain.Appointment, now time.Time) Event {
	return Event{
		Type:          TypeAppointmentCreated,
		OccurredAt:    now,
		ServiceID:     appt.ServiceID,
		ScheduledAt:   appt.ScheduledAt,
		AppointmentID: &appt.ID,
		Status:        string(appt.Status),
	}
}

// AppointmentCancelled строит событие отмены бронирования
func AppointmentCancelled(appt *domain.Appointment, status domain.AppointmentStatus, now time.Time) Event {
	return Event{
		Type:          TypeAppointmentCancelled,
		OccurredAt:    now,
		ServiceID:     appt.ServiceID,
		ScheduledAt:   appt.ScheduledAt,
		AppointmentID: &appt.ID,
		Status:        string(status),
	}
}

// ReservationExpired строит событие протухания резерва
func ReservationExpired(resv *domain.SlotReservation, now time.Time) Event {
	return Event{
		Type:          TypeReservationExpired,
		OccurredAt:    now,
		ServiceID:     resv.ServiceID,
		ScheduledAt:   resv.ScheduledAt,
		ReservationID: &resv.ID,
		Status:        string(domain.ReservationExpired),
	}
}
