package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Service represents a bookable service type.
// Lead time, buffer and operating hours may override the calendar defaults.
type Service struct {
	ID              int64
	Name            string
	ServiceType     string
	DurationMinutes int
	BasePrice       float64
	Active          bool

	// Optional overrides; nil falls back to CalendarConfig defaults
	LeadTimeMinutes *int
	BufferMinutes   *int

	// Optional per-service operating hours (e.g. extended-hours services);
	// when set they replace the weekday open/close for every open day
	OpenOverride  *types.TimeString
	CloseOverride *types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveLeadTime returns the service lead time, falling back to the calendar default
func (s *Service) EffectiveLeadTime(cfg *CalendarConfig) time.Duration {
	if s.LeadTimeMinutes != nil {
		return time.Duration(*s.LeadTimeMinutes) * time.Minute
	}
	return time.Duration(cfg.LeadTimeMinutes) * time.Minute
}

// EffectiveBuffer returns the service buffer, falling back to the calendar default
func (s *Service) EffectiveBuffer(cfg *CalendarConfig) time.Duration {
	if s.BufferMinutes != nil {
		return time.Duration(*s.BufferMinutes) * time.Minute
	}
	return time.Duration(cfg.BufferMinutes) * time.Minute
}

// HasHoursOverride returns true if the service carries its own open/close times
func (s *Service) HasHoursOverride() bool {
	return s.OpenOverride != nil && s.CloseOverride != nil
}
