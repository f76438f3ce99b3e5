package hold_slot

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
)

// validate проверяет параметры запроса до обращения к хранилищу
func validate(req Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive, got %d", ErrInvalidServiceID, req.ServiceID)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidStartTime)
	}

	if !req.StartTime.Equal(req.StartTime.Truncate(time.Minute)) {
		return fmt.Errorf("%w: startTime must be minute-aligned", ErrInvalidStartTime)
	}

	return nil
}

// validateStartWithinHours проверяет, что слот начинается на сетке слотов
// и целиком помещается в рабочий интервал
func validateStartWithinHours(start time.Time, duration time.Duration, intervals []schedule.Interval, slotInterval time.Duration) error {
	for _, interval := range intervals {
		if start.Before(interval.Start) || start.Add(duration).After(interval.End) {
			continue
		}
		if start.Sub(interval.Start)%slotInterval != 0 {
			return fmt.Errorf("%w: startTime %s is off the slot grid", ErrInvalidStartTime, start.Format(time.RFC3339))
		}
		return nil
	}

	return fmt.Errorf("%w: %s", ErrOutsideBusinessHours, start.Format(time.RFC3339))
}

// validateBookingWindow проверяет lead time и горизонт бронирования
func validateBookingWindow(start, now time.Time, lead time.Duration, loc *time.Location, cfg *domain.CalendarConfig) error {
	if start.Before(now.Add(lead)) {
		return fmt.Errorf("%w: earliest bookable is %s", ErrLeadTimeViolation, now.Add(lead).Format(time.RFC3339))
	}

	if cfg.HasAdvanceBookingLimit() {
		today := time.Date(now.In(loc).Year(), now.In(loc).Month(), now.In(loc).Day(), 0, 0, 0, 0, loc)
		horizon := today.AddDate(0, 0, cfg.AdvanceBookingDays+1)
		if !start.Before(horizon) {
			return fmt.Errorf("%w: beyond %d days", ErrDateTooFar, cfg.AdvanceBookingDays)
		}
	}

	return nil
}
