package schedule

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// GenerateCandidates генерирует кандидатов-слотов внутри открытых интервалов.
// Чистая функция: детерминирована при фиксированном now.
//
// Правила:
//   - слоты идут с фиксированным шагом slotInterval от начала интервала,
//     независимо от длительности услуги;
//   - слот, который не помещается до закрытия (start+duration > interval.End),
//     отбрасывается, а не усекается;
//   - слот, начинающийся раньше now+minLead, эмитится как недоступный
//     (клиент показывает его задизейбленным, а не теряет из сетки);
//   - результат упорядочен по возрастанию начала — на этом порядке держится
//     запрос "первый доступный слот".
func GenerateCandidates(
	intervals []Interval,
	duration time.Duration,
	slotInterval time.Duration,
	now time.Time,
	minLead time.Duration,
) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)
	if duration <= 0 || slotInterval <= 0 {
		return slots
	}

	earliestBookable := now.Add(minLead)

	for _, interval := range intervals {
		for start := interval.Start; ; start = start.Add(slotInterval) {
			end := start.Add(duration)
			if end.After(interval.End) {
				break
			}

			slots = append(slots, domain.TimeSlot{
				Start:     start,
				End:       end,
				Available: !start.Before(earliestBookable),
			})
		}
	}

	return slots
}
