package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

func chicagoConfig() *domain.CalendarConfig {
	cfg := domain.DefaultCalendarConfig()
	cfg.Timezone = "America/Chicago"
	return cfg
}

func chicago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	return loc
}

// Понедельник 09:00-17:00 America/Chicago (CST, UTC-6)
func mondayOpenInterval(t *testing.T) Interval {
	t.Helper()
	loc := chicago(t)
	// 2026-01-05 - понедельник
	return Interval{
		Start: time.Date(2026, 1, 5, 9, 0, 0, 0, loc).UTC(),
		End:   time.Date(2026, 1, 5, 17, 0, 0, 0, loc).UTC(),
	}
}

func TestResolveOpenIntervals_RegularMonday(t *testing.T) {
	cfg := chicagoConfig()
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) // понедельник

	intervals, err := ResolveOpenIntervals(date, nil, cfg)
	require.NoError(t, err)
	require.Len(t, intervals, 1)

	expected := mondayOpenInterval(t)
	assert.True(t, intervals[0].Start.Equal(expected.Start))
	assert.True(t, intervals[0].End.Equal(expected.End))

	// Январь в Чикаго - CST (UTC-6): 09:00 локальных = 15:00 UTC
	assert.Equal(t, 15, intervals[0].Start.UTC().Hour())
}

func TestResolveOpenIntervals_Holiday(t *testing.T) {
	cfg := chicagoConfig()
	cfg.Holidays = []string{"2026-01-05"}
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	intervals, err := ResolveOpenIntervals(date, nil, cfg)
	require.NoError(t, err)
	assert.Empty(t, intervals)
}

func TestResolveOpenIntervals_ClosedDay(t *testing.T) {
	cfg := chicagoConfig()
	cfg.Hours[int(time.Sunday)] = domain.DayHours{IsOpen: false}
	date := time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC) // воскресенье

	intervals, err := ResolveOpenIntervals(date, nil, cfg)
	require.NoError(t, err)
	assert.Empty(t, intervals)
}

func TestResolveOpenIntervals_DSTSpringForward(t *testing.T) {
	cfg := chicagoConfig()

	// 2026-03-08 - второе воскресенье марта, переход CST -> CDT.
	// До перехода 10:00 локальных = 16:00 UTC, после - 15:00 UTC.
	before, err := ResolveOpenIntervals(time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), nil, cfg)
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, 16, before[0].Start.UTC().Hour())

	after, err := ResolveOpenIntervals(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), nil, cfg)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, 15, after[0].Start.UTC().Hour())
}

func TestResolveOpenIntervals_ServiceHoursOverride(t *testing.T) {
	cfg := chicagoConfig()
	svc := &domain.Service{
		ID:              1,
		DurationMinutes: 60,
		OpenOverride:    ptr.Ptr(types.TimeString("07:00")),
		CloseOverride:   ptr.Ptr(types.TimeString("21:00")),
	}
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	intervals, err := ResolveOpenIntervals(date, svc, cfg)
	require.NoError(t, err)
	require.Len(t, intervals, 1)

	loc := chicago(t)
	assert.True(t, intervals[0].Start.Equal(time.Date(2026, 1, 5, 7, 0, 0, 0, loc)))
	assert.True(t, intervals[0].End.Equal(time.Date(2026, 1, 5, 21, 0, 0, 0, loc)))
}

func TestResolveOpenIntervals_UnknownTimezone(t *testing.T) {
	cfg := chicagoConfig()
	cfg.Timezone = "Mars/Olympus_Mons"

	_, err := ResolveOpenIntervals(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), nil, cfg)
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}

func TestResolveOpenIntervals_Deterministic(t *testing.T) {
	cfg := chicagoConfig()
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	first, err := ResolveOpenIntervals(date, nil, cfg)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ResolveOpenIntervals(date, nil, cfg)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// Сценарий: понедельник 09:00-17:00, услуга 60 минут, шаг 30 минут,
// бронирований нет. Первый слот 09:00-10:00, последний 16:00-17:00.
func TestGenerateCandidates_FullOpenDay(t *testing.T) {
	interval := mondayOpenInterval(t)
	now := interval.Start.Add(-48 * time.Hour) // запрос задолго до даты

	slots := GenerateCandidates([]Interval{interval}, 60*time.Minute, 30*time.Minute, now, 2*time.Hour)

	require.Len(t, slots, 15) // старты 09:00..16:00 с шагом 30 минут
	assert.True(t, slots[0].Start.Equal(interval.Start))
	assert.True(t, slots[0].End.Equal(interval.Start.Add(time.Hour)))
	last := slots[len(slots)-1]
	assert.True(t, last.Start.Equal(interval.End.Add(-time.Hour)))
	assert.True(t, last.End.Equal(interval.End))

	for _, slot := range slots {
		assert.True(t, slot.Available)
	}
}

func TestGenerateCandidates_SlotPastClosingDropped(t *testing.T) {
	interval := mondayOpenInterval(t)
	now := interval.Start.Add(-48 * time.Hour)

	// Услуга 90 минут: последний старт 15:30, слот 16:00-17:30 не эмитится
	slots := GenerateCandidates([]Interval{interval}, 90*time.Minute, 30*time.Minute, now, 0)

	require.NotEmpty(t, slots)
	last := slots[len(slots)-1]
	assert.True(t, last.End.Equal(interval.End))
	assert.True(t, last.Start.Equal(interval.End.Add(-90*time.Minute)))
}

// Слоты раньше now+minLead эмитятся недоступными, а не пропадают из сетки
func TestGenerateCandidates_LeadTimeMarksUnavailable(t *testing.T) {
	interval := mondayOpenInterval(t)
	// "Сейчас" 09:05 локальных, lead time 2 часа: доступно только с 11:30
	now := interval.Start.Add(5 * time.Minute)

	slots := GenerateCandidates([]Interval{interval}, 60*time.Minute, 30*time.Minute, now, 2*time.Hour)
	require.Len(t, slots, 15)

	earliest := now.Add(2 * time.Hour)
	for _, slot := range slots {
		if slot.Start.Before(earliest) {
			assert.False(t, slot.Available, "slot %s must be unavailable (lead time)", slot.Start)
		} else {
			assert.True(t, slot.Available, "slot %s must be available", slot.Start)
		}
	}

	// Слоты не выпадают из ответа: сетка полная
	assert.True(t, slots[0].Start.Equal(interval.Start))
}

func TestGenerateCandidates_AscendingOrder(t *testing.T) {
	interval := mondayOpenInterval(t)
	slots := GenerateCandidates([]Interval{interval}, 60*time.Minute, 30*time.Minute, interval.Start.Add(-time.Hour), 0)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Start.Before(slots[i].Start))
	}
}

func TestGenerateCandidates_EmptyIntervals(t *testing.T) {
	slots := GenerateCandidates(nil, 60*time.Minute, 30*time.Minute, time.Now(), 0)
	assert.Empty(t, slots)
}

// Сценарий: бронирование 10:00-11:00 с буфером 15 минут блокирует 10:00-11:15.
// Недоступны старты 09:30, 10:00, 10:30, 11:00; 09:00 и 11:30 остаются доступны.
func TestMarkConflicts_AppointmentWithBuffer(t *testing.T) {
	interval := mondayOpenInterval(t)
	now := interval.Start.Add(-48 * time.Hour)
	loc := chicago(t)

	candidates := GenerateCandidates([]Interval{interval}, 60*time.Minute, 30*time.Minute, now, 2*time.Hour)

	appt := &domain.Appointment{
		ServiceID:       1,
		ScheduledAt:     time.Date(2026, 1, 5, 10, 0, 0, 0, loc).UTC(),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}

	blocking := BlockingIntervals([]*domain.Appointment{appt}, nil, 15*time.Minute, now)
	require.Len(t, blocking, 1)
	assert.True(t, blocking[0].End.Equal(appt.EndsAt().Add(15*time.Minute)))

	marked := MarkConflicts(candidates, blocking)

	availability := make(map[string]bool)
	for _, slot := range marked {
		availability[slot.Start.In(loc).Format("15:04")] = slot.Available
	}

	assert.True(t, availability["09:00"])
	assert.False(t, availability["09:30"])
	assert.False(t, availability["10:00"])
	assert.False(t, availability["10:30"])
	assert.False(t, availability["11:00"])
	assert.True(t, availability["11:30"])
}

// Граничащие интервалы не конфликтуют: back-to-back допустим
func TestMarkConflicts_BoundaryIsNotConflict(t *testing.T) {
	base := time.Date(2026, 1, 5, 15, 0, 0, 0, time.UTC)
	candidates := []domain.TimeSlot{
		{Start: base, End: base.Add(time.Hour), Available: true},
	}
	blocking := []Interval{
		{Start: base.Add(-time.Hour), End: base},       // заканчивается ровно на старте
		{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)}, // начинается ровно на конце
	}

	marked := MarkConflicts(candidates, blocking)
	assert.True(t, marked[0].Available)
}

// Конфликт не может вернуть слоту доступность, закрытую lead time
func TestMarkConflicts_NeverResurrectsUnavailable(t *testing.T) {
	base := time.Date(2026, 1, 5, 15, 0, 0, 0, time.UTC)
	candidates := []domain.TimeSlot{
		{Start: base, End: base.Add(time.Hour), Available: false},
	}

	marked := MarkConflicts(candidates, nil)
	assert.False(t, marked[0].Available)
}

func TestBlockingIntervals_SkipsNonBlockingAppointments(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	appts := []*domain.Appointment{
		{ScheduledAt: now.Add(time.Hour), DurationMinutes: 60, Status: domain.StatusCancelledByClient},
		{ScheduledAt: now.Add(2 * time.Hour), DurationMinutes: 60, Status: domain.StatusNoShow},
		{ScheduledAt: now.Add(3 * time.Hour), DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	blocking := BlockingIntervals(appts, nil, 0, now)
	require.Len(t, blocking, 1)
	assert.True(t, blocking[0].Start.Equal(now.Add(3*time.Hour)))
}

// Истекший hold перестает блокировать немедленно, ещё до фоновой уборки
func TestBlockingIntervals_ExpiredReservationDoesNotBlock(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	reservations := []*domain.SlotReservation{
		{
			ScheduledAt:     now.Add(time.Hour),
			DurationMinutes: 60,
			Status:          domain.ReservationHeld,
			ExpiresAt:       now.Add(-time.Minute), // протух минуту назад
		},
		{
			ScheduledAt:     now.Add(2 * time.Hour),
			DurationMinutes: 60,
			Status:          domain.ReservationHeld,
			ExpiresAt:       now.Add(10 * time.Minute),
		},
		{
			ScheduledAt:     now.Add(3 * time.Hour),
			DurationMinutes: 60,
			Status:          domain.ReservationReleased,
			ExpiresAt:       now.Add(10 * time.Minute),
		},
	}

	blocking := BlockingIntervals(nil, reservations, 0, now)
	require.Len(t, blocking, 1)
	assert.True(t, blocking[0].Start.Equal(now.Add(2*time.Hour)))
}

func TestIsStartBlocked(t *testing.T) {
	base := time.Date(2026, 1, 5, 15, 0, 0, 0, time.UTC)
	blocking := []Interval{{Start: base, End: base.Add(75 * time.Minute)}} // 60 мин + 15 буфер

	assert.True(t, IsStartBlocked(base, time.Hour, blocking))
	assert.True(t, IsStartBlocked(base.Add(time.Hour), time.Hour, blocking))      // 16:00 попадает в буфер
	assert.False(t, IsStartBlocked(base.Add(75*time.Minute), time.Hour, blocking)) // 16:15 ровно после буфера
	assert.False(t, IsStartBlocked(base.Add(-time.Hour), time.Hour, blocking))     // граничит со стартом
}

// Инвариант непересечения: набор блокирующих интервалов попарно не пересекается.
// Проверяем, что хелпер, которым пользуется менеджер резервов, его сохраняет.
func TestBlockingIntervals_PairwiseNonOverlap(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	buffer := 15 * time.Minute

	// Бронирования, созданные через IsStartBlocked-проверку, не пересекаются
	appts := []*domain.Appointment{
		{ScheduledAt: now, DurationMinutes: 60, Status: domain.StatusConfirmed},
		{ScheduledAt: now.Add(75 * time.Minute), DurationMinutes: 60, Status: domain.StatusConfirmed},
		{ScheduledAt: now.Add(150 * time.Minute), DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	blocking := BlockingIntervals(appts, nil, buffer, now)
	for i := 0; i < len(blocking); i++ {
		for j := i + 1; j < len(blocking); j++ {
			assert.False(t, blocking[i].Overlaps(blocking[j]),
				"intervals %d and %d overlap", i, j)
		}
	}
}
