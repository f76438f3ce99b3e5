package schedule

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// BlockingIntervals собирает блокирующие интервалы из активных бронирований
// и живых резервов. Буфер добавляется ОДИН раз — к концу блокирующего
// интервала: добавление и к кандидату, и к блоку удваивало бы зазор.
//
// Резерв блокирует слот только в состоянии "held и не протух":
// истекший резерв перестает считаться мгновенно, не дожидаясь фоновой уборки.
func BlockingIntervals(
	appointments []*domain.Appointment,
	reservations []*domain.SlotReservation,
	buffer time.Duration,
	now time.Time,
) []Interval {
	blocking := make([]Interval, 0, len(appointments)+len(reservations))

	for _, appt := range appointments {
		if !appt.IsBlocking() {
			continue
		}
		blocking = append(blocking, Interval{
			Start: appt.ScheduledAt,
			End:   appt.EndsAt().Add(buffer),
		})
	}

	for _, resv := range reservations {
		if !resv.IsActive(now) {
			continue
		}
		blocking = append(blocking, Interval{
			Start: resv.ScheduledAt,
			End:   resv.EndsAt().Add(buffer),
		})
	}

	sort.Slice(blocking, func(i, j int) bool {
		return blocking[i].Start.Before(blocking[j].Start)
	})

	return blocking
}

// MarkConflicts помечает кандидатов, пересекающихся с блокирующими интервалами.
// Конфликт может только перевести слот available → unavailable, но не обратно:
// слот, уже закрытый lead time, остается недоступным.
//
// Сложность O(N×M) — кандидаты ограничены одним днем, блоки единицами,
// interval tree на этом масштабе не нужен.
func MarkConflicts(candidates []domain.TimeSlot, blocking []Interval) []domain.TimeSlot {
	result := make([]domain.TimeSlot, len(candidates))

	for i, slot := range candidates {
		available := slot.Available
		if available {
			candidate := Interval{Start: slot.Start, End: slot.End}
			for _, block := range blocking {
				if candidate.Overlaps(block) {
					available = false
					break
				}
			}
		}
		result[i] = domain.TimeSlot{Start: slot.Start, End: slot.End, Available: available}
	}

	return result
}

// IsStartBlocked проверяет конкретное время начала против блокирующих интервалов.
// Используется менеджером резервов при атомарной проверке-и-вставке.
func IsStartBlocked(start time.Time, duration time.Duration, blocking []Interval) bool {
	candidate := Interval{Start: start, End: start.Add(duration)}
	for _, block := range blocking {
		if candidate.Overlaps(block) {
			return true
		}
	}
	return false
}
