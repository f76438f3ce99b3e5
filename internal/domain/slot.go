package domain

import "time"

// TimeSlot represents a candidate booking slot in an availability response.
// Derived value, recomputed per query; never persisted.
type TimeSlot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

// Duration returns the slot length
func (s *TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
