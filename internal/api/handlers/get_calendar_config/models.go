package get_calendar_config

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// DayHoursModel часы работы одного дня недели
type DayHoursModel struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// CalendarConfigResponse HTTP response model.
// Ключи hours — имена дней недели в нижнем регистре; отсутствие дня = выходной.
type CalendarConfigResponse struct {
	Timezone            string                   `json:"timezone"`
	SlotIntervalMinutes int                      `json:"slotIntervalMinutes"`
	LeadTimeMinutes     int                      `json:"leadTimeMinutes"`
	BufferMinutes       int                      `json:"bufferMinutes"`
	HoldTTLMinutes      int                      `json:"holdTtlMinutes"`
	AdvanceBookingDays  int                      `json:"advanceBookingDays"`
	Hours               map[string]DayHoursModel `json:"hours"`
	Holidays            []string                 `json:"holidays"`
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(cfg *domain.CalendarConfig) *CalendarConfigResponse {
	hours := make(map[string]DayHoursModel)
	for weekday, day := range cfg.Hours {
		if !day.IsOpen {
			continue
		}
		hours[strings.ToLower(time.Weekday(weekday).String())] = DayHoursModel{
			Open:  string(day.Open),
			Close: string(day.Close),
		}
	}

	holidays := cfg.Holidays
	if holidays == nil {
		holidays = []string{}
	}

	return &CalendarConfigResponse{
		Timezone:            cfg.Timezone,
		SlotIntervalMinutes: cfg.SlotIntervalMinutes,
		LeadTimeMinutes:     cfg.LeadTimeMinutes,
		BufferMinutes:       cfg.BufferMinutes,
		HoldTTLMinutes:      cfg.HoldTTLMinutes,
		AdvanceBookingDays:  cfg.AdvanceBookingDays,
		Hours:               hours,
		Holidays:            holidays,
	}
}
