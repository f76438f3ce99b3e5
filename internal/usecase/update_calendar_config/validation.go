package update_calendar_config

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validate проверяет конфигурацию по бизнес-границам
func validate(cfg *domain.CalendarConfig) error {
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidConfig, cfg.Timezone)
	}

	if cfg.SlotIntervalMinutes < domain.MinSlotIntervalMinutes || cfg.SlotIntervalMinutes > domain.MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: slotIntervalMinutes %d out of [%d, %d]",
			ErrInvalidConfig, cfg.SlotIntervalMinutes, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}

	if cfg.LeadTimeMinutes < domain.MinLeadTimeMinutes || cfg.LeadTimeMinutes > domain.MaxLeadTimeMinutes {
		return fmt.Errorf("%w: leadTimeMinutes %d out of [%d, %d]",
			ErrInvalidConfig, cfg.LeadTimeMinutes, domain.MinLeadTimeMinutes, domain.MaxLeadTimeMinutes)
	}

	if cfg.BufferMinutes < domain.MinBufferMinutes || cfg.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes %d out of [%d, %d]",
			ErrInvalidConfig, cfg.BufferMinutes, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if cfg.HoldTTLMinutes < domain.MinHoldTTLMinutes || cfg.HoldTTLMinutes > domain.MaxHoldTTLMinutes {
		return fmt.Errorf("%w: holdTtlMinutes %d out of [%d, %d]",
			ErrInvalidConfig, cfg.HoldTTLMinutes, domain.MinHoldTTLMinutes, domain.MaxHoldTTLMinutes)
	}

	if cfg.AdvanceBookingDays < 0 || cfg.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays %d out of [0, %d]",
			ErrInvalidConfig, cfg.AdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	for weekday, hours := range cfg.Hours {
		if !hours.IsOpen {
			continue
		}
		if err := hours.Open.Validate(); err != nil {
			return fmt.Errorf("%w: %s open: %v", ErrInvalidConfig, time.Weekday(weekday), err)
		}
		if err := hours.Close.Validate(); err != nil {
			return fmt.Errorf("%w: %s close: %v", ErrInvalidConfig, time.Weekday(weekday), err)
		}
		if !hours.Open.IsBefore(hours.Close) {
			return fmt.Errorf("%w: %s open %s is not before close %s",
				ErrInvalidConfig, time.Weekday(weekday), hours.Open, hours.Close)
		}
	}

	for _, holiday := range cfg.Holidays {
		if _, err := time.Parse(domain.DateFormat, holiday); err != nil {
			return fmt.Errorf("%w: holiday %q is not YYYY-MM-DD", ErrInvalidConfig, holiday)
		}
	}

	return nil
}
