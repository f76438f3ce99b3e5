package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

var (
	// ErrUnknownTimezone возвращается, когда таймзона конфигурации не найдена в базе IANA
	ErrUnknownTimezone = errors.New("schedule: unknown timezone")

	// ErrInvalidHours возвращается при некорректных часах работы (close <= open)
	ErrInvalidHours = errors.New("schedule: invalid operating hours")
)

// ResolveOpenIntervals резолвит календарные правила бизнеса в список открытых
// интервалов на указанную дату. Чистая функция: без I/O, детерминирована.
//
// Правила:
//   - date интерпретируется как календарная дата в таймзоне бизнеса;
//   - выходной день или праздник → пустой список;
//   - open/close конвертируются в абсолютные инстанты через IANA-таймзону,
//     offset вычисляется для конкретной даты (DST-переходы учитываются);
//   - per-service override часов (если задан) заменяет open/close дня;
//   - в базовом дизайне на день приходится максимум один интервал.
func ResolveOpenIntervals(date time.Time, svc *domain.Service, cfg *domain.CalendarConfig) ([]Interval, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownTimezone, cfg.Timezone, err)
	}

	// Представляем дату как календарный день в таймзоне бизнеса
	year, month, day := date.Date()
	localDate := time.Date(year, month, day, 0, 0, 0, 0, loc)

	// Праздники сравниваются как календарные даты бизнес-таймзоны
	if cfg.IsHoliday(localDate.Format(domain.DateFormat)) {
		return []Interval{}, nil
	}

	hours := cfg.HoursFor(localDate.Weekday())
	if !hours.IsOpen {
		return []Interval{}, nil
	}

	open, close := hours.Open, hours.Close

	// Услуга с собственными часами (например, расширенный график) перекрывает часы дня
	if svc != nil && svc.HasHoursOverride() {
		open, close = *svc.OpenOverride, *svc.CloseOverride
	}

	start, err := instantAt(localDate, open, loc)
	if err != nil {
		return nil, err
	}
	end, err := instantAt(localDate, close, loc)
	if err != nil {
		return nil, err
	}

	if !end.After(start) {
		return nil, fmt.Errorf("%w: open=%s close=%s", ErrInvalidHours, open, close)
	}

	return []Interval{{Start: start, End: end}}, nil
}

// instantAt строит абсолютный инстант из календарной даты и времени суток.
// time.Date с location сам подбирает правильный UTC-offset для этой даты,
// поэтому границы рабочего дня корректны и в дни DST-переходов.
func instantAt(localDate time.Time, tod types.TimeString, loc *time.Location) (time.Time, error) {
	hour, minute, err := tod.Clock()
	if err != nil {
		return time.Time{}, fmt.Errorf("schedule: bad time of day %q: %w", tod, err)
	}
	return time.Date(localDate.Year(), localDate.Month(), localDate.Day(), hour, minute, 0, 0, loc).UTC(), nil
}
