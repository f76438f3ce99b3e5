package domain

import "time"

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusScheduled         AppointmentStatus = "scheduled"
	StatusConfirmed         AppointmentStatus = "confirmed"
	StatusReadyForService   AppointmentStatus = "ready_for_service"
	StatusInProgress        AppointmentStatus = "in_progress"
	StatusCompleted         AppointmentStatus = "completed"
	StatusCancelledByClient AppointmentStatus = "cancelled_by_client"
	StatusCancelledByStaff  AppointmentStatus = "cancelled_by_staff"
	StatusNoShow            AppointmentStatus = "no_show"
	StatusArchived          AppointmentStatus = "archived"
)

// Appointment represents a confirmed service appointment in the ledger.
// Appointments are never deleted, only status-transitioned.
type Appointment struct {
	ID              int64
	ServiceID       int64
	ScheduledAt     time.Time // absolute instant, stored as UTC
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized customer data for history
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the appointment occupies calendar capacity
func (a *Appointment) IsBlocking() bool {
	switch a.Status {
	case StatusScheduled, StatusConfirmed, StatusReadyForService, StatusInProgress:
		return true
	default:
		return false
	}
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed || a.Status == StatusReadyForService
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByClient || a.Status == StatusCancelledByStaff
}

// EndsAt returns the instant at which the appointment ends (without buffer)
func (a *Appointment) EndsAt() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
