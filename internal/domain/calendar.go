package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// DayHours operating hours for a single weekday.
// The base design supports one open/close pair per weekday; the working day
// never crosses midnight.
type DayHours struct {
	IsOpen bool
	Open   types.TimeString
	Close  types.TimeString
}

// CalendarConfig the business operating calendar and scheduling defaults.
// Weekday rules and holidays are interpreted in the business timezone;
// all derived instants are absolute (UTC).
type CalendarConfig struct {
	ID       int64
	Timezone string // IANA timezone identifier

	SlotIntervalMinutes int
	LeadTimeMinutes     int
	BufferMinutes       int
	HoldTTLMinutes      int
	AdvanceBookingDays  int // 0 = unlimited

	// Hours indexed by time.Weekday (Sunday = 0)
	Hours [7]DayHours

	// Holidays as timezone-naive calendar dates, formatted YYYY-MM-DD
	Holidays []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoursFor returns the operating hours rule for the given weekday
func (c *CalendarConfig) HoursFor(weekday time.Weekday) DayHours {
	return c.Hours[int(weekday)]
}

// IsHoliday returns true if the given calendar date (YYYY-MM-DD, business
// timezone) is configured as a holiday
func (c *CalendarConfig) IsHoliday(date string) bool {
	for _, h := range c.Holidays {
		if h == date {
			return true
		}
	}
	return false
}

// HoldTTL returns the reservation hold duration
func (c *CalendarConfig) HoldTTL() time.Duration {
	return time.Duration(c.HoldTTLMinutes) * time.Minute
}

// HasAdvanceBookingLimit returns true if there is a limit on how far in advance
// appointments can be booked
func (c *CalendarConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// DefaultCalendarConfig returns the compiled-in fallback calendar.
// Served when no calendar is configured or the configuration source is
// unavailable (the degraded path flags the latter in response metadata).
func DefaultCalendarConfig() *CalendarConfig {
	cfg := &CalendarConfig{
		Timezone:            DefaultTimezone,
		SlotIntervalMinutes: DefaultSlotIntervalMinutes,
		LeadTimeMinutes:     DefaultLeadTimeMinutes,
		BufferMinutes:       DefaultBufferMinutes,
		HoldTTLMinutes:      DefaultHoldTTLMinutes,
		AdvanceBookingDays:  DefaultAdvanceBookingDays,
	}

	for wd := time.Monday; wd <= time.Friday; wd++ {
		cfg.Hours[int(wd)] = DayHours{IsOpen: true, Open: "09:00", Close: "17:00"}
	}
	cfg.Hours[int(time.Saturday)] = DayHours{IsOpen: true, Open: "10:00", Close: "15:00"}
	cfg.Hours[int(time.Sunday)] = DayHours{IsOpen: true, Open: "10:00", Close: "15:00"}

	return cfg
}
