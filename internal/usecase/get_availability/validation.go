package get_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validate проверяет параметры запроса до обращения к хранилищу
func validate(req Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive, got %d", ErrInvalidServiceID, req.ServiceID)
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDate, req.Date)
	}

	if req.ClientTimezone != "" {
		if _, err := time.LoadLocation(req.ClientTimezone); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTimezone, req.ClientTimezone)
		}
	}

	return nil
}

// validateDateWindow проверяет, что дата не в прошлом и не дальше горизонта бронирования.
// Сравнение по календарным датам в часовом поясе бизнеса.
func validateDateWindow(date time.Time, now time.Time, loc *time.Location, cfg *domain.CalendarConfig) error {
	today := time.Date(now.In(loc).Year(), now.In(loc).Month(), now.In(loc).Day(), 0, 0, 0, 0, loc)
	requested := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	if requested.Before(today) {
		return fmt.Errorf("%w: %s", ErrDateInPast, requested.Format(domain.DateFormat))
	}

	if cfg.HasAdvanceBookingLimit() {
		horizon := today.AddDate(0, 0, cfg.AdvanceBookingDays)
		if requested.After(horizon) {
			return fmt.Errorf("%w: %s is beyond %d days", ErrDateTooFar, requested.Format(domain.DateFormat), cfg.AdvanceBookingDays)
		}
	}

	return nil
}
