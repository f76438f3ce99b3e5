package update_calendar_config

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// DayHoursModel часы работы одного дня недели
type DayHoursModel struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// UpdateCalendarConfigRequest HTTP request model.
// Ключи hours — имена дней недели в нижнем регистре; отсутствие дня = выходной.
type UpdateCalendarConfigRequest struct {
	Timezone            string                   `json:"timezone"`
	SlotIntervalMinutes int                      `json:"slotIntervalMinutes"`
	LeadTimeMinutes     int                      `json:"leadTimeMinutes"`
	BufferMinutes       int                      `json:"bufferMinutes"`
	HoldTTLMinutes      int                      `json:"holdTtlMinutes"`
	AdvanceBookingDays  int                      `json:"advanceBookingDays"`
	Hours               map[string]DayHoursModel `json:"hours"`
	Holidays            []string                 `json:"holidays"`
}

// ToDomain конвертирует HTTP запрос в доменную модель
func (r *UpdateCalendarConfigRequest) ToDomain() (*domain.CalendarConfig, error) {
	cfg := &domain.CalendarConfig{
		Timezone:            r.Timezone,
		SlotIntervalMinutes: r.SlotIntervalMinutes,
		LeadTimeMinutes:     r.LeadTimeMinutes,
		BufferMinutes:       r.BufferMinutes,
		HoldTTLMinutes:      r.HoldTTLMinutes,
		AdvanceBookingDays:  r.AdvanceBookingDays,
		Holidays:            r.Holidays,
	}

	for name, day := range r.Hours {
		weekday, err := parseWeekday(name)
		if err != nil {
			return nil, err
		}
		cfg.Hours[weekday] = domain.DayHours{
			IsOpen: true,
			Open:   types.TimeString(day.Open),
			Close:  types.TimeString(day.Close),
		}
	}

	return cfg, nil
}

func parseWeekday(name string) (int, error) {
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		if strings.EqualFold(name, weekday.String()) {
			return int(weekday), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}
