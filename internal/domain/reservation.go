package domain

import (
	"fmt"
	"time"
)

// ReservationStatus represents the lifecycle status of a slot reservation
type ReservationStatus string

const (
	ReservationHeld      ReservationStatus = "held"
	ReservationConverted ReservationStatus = "converted"
	ReservationExpired   ReservationStatus = "expired"
	ReservationReleased  ReservationStatus = "released"
)

// SlotReservation represents a time-boxed provisional claim on a slot.
// A reservation transitions exactly once out of "held" and is never resurrected;
// its expiry is fixed at creation and never extended.
type SlotReservation struct {
	ID              int64
	ServiceID       int64
	ScheduledAt     time.Time // absolute instant, stored as UTC
	DurationMinutes int
	SlotKey         string // normalized (service, start) key, unique among held rows
	HolderToken     string
	Status          ReservationStatus
	ExpiresAt       time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsActive returns true if the reservation still blocks its slot:
// it is held and its TTL has not passed.
func (r *SlotReservation) IsActive(now time.Time) bool {
	return r.Status == ReservationHeld && now.Before(r.ExpiresAt)
}

// IsTerminal returns true if the reservation reached a terminal state
func (r *SlotReservation) IsTerminal() bool {
	return r.Status == ReservationConverted || r.Status == ReservationExpired || r.Status == ReservationReleased
}

// EndsAt returns the instant at which the reserved slot ends (without buffer)
func (r *SlotReservation) EndsAt() time.Time {
	return r.ScheduledAt.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// SlotKeyFor builds the normalized slot key used by the storage-level
// uniqueness backstop: one held reservation per (service, start instant).
func SlotKeyFor(serviceID int64, startAt time.Time) string {
	return fmt.Sprintf("%d:%s", serviceID, startAt.UTC().Truncate(time.Minute).Format(time.RFC3339))
}
