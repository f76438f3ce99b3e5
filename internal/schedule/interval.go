package schedule

import "time"

// Interval полуоткрытый временной интервал [Start, End) в абсолютных инстантах (UTC)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps проверяет реальное пересечение интервалов.
// Используются строгие неравенства: интервалы, граничащие точка-в-точку,
// НЕ пересекаются (back-to-back бронирования допустимы, буфер уже учтен
// в конце блокирующего интервала).
//
// Примеры:
// - Слот 11:30-12:30, блок 11:20-11:40 → ЕСТЬ пересечение
// - Слот 11:30-12:30, блок 11:00-11:30 → НЕТ пересечения (граничат)
// - Слот 11:30-12:30, блок 12:30-13:00 → НЕТ пересечения (граничат)
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}
