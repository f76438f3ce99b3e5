package get_availability

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/calendar"
)

type stubCalendarRepo struct {
	cfg    *domain.CalendarConfig
	cfgErr error
	svc    *domain.Service
	svcErr error
}

func (s *stubCalendarRepo) GetConfig(_ context.Context) (*domain.CalendarConfig, error) {
	if s.cfgErr != nil {
		return nil, s.cfgErr
	}
	return s.cfg, nil
}

func (s *stubCalendarRepo) GetService(_ context.Context, _ int64) (*domain.Service, error) {
	if s.svcErr != nil {
		return nil, s.svcErr
	}
	return s.svc, nil
}

type stubAppointmentRepo struct {
	appointments []*domain.Appointment
	calls        int
}

func (s *stubAppointmentRepo) GetBlockingInRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Appointment, error) {
	s.calls++
	return s.appointments, nil
}

// rangeAppointmentRepo отдает только бронирования с началом внутри [from, to),
// повторяя предикат SQL-запроса репозитория
type rangeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (s *rangeAppointmentRepo) GetBlockingInRange(_ context.Context, serviceID int64, from, to time.Time) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, appt := range s.appointments {
		if appt.ServiceID == serviceID && !appt.ScheduledAt.Before(from) && appt.ScheduledAt.Before(to) {
			out = append(out, appt)
		}
	}
	return out, nil
}

type stubReservationRepo struct {
	reservations []*domain.SlotReservation
}

func (s *stubReservationRepo) GetActiveInRange(_ context.Context, _ int64, _, _, _ time.Time) ([]*domain.SlotReservation, error) {
	return s.reservations, nil
}

type stubCache struct {
	entries map[string][]byte
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]byte)}
}

func (s *stubCache) key(serviceID int64, date string, bucket time.Time) string {
	return fmt.Sprintf("%d:%s:%s", serviceID, date, bucket.UTC().Format("200601021504"))
}

func (s *stubCache) Get(_ context.Context, serviceID int64, date string, bucket time.Time) ([]byte, error) {
	payload, ok := s.entries[s.key(serviceID, date, bucket)]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return payload, nil
}

func (s *stubCache) Set(_ context.Context, serviceID int64, date string, bucket time.Time, payload []byte) error {
	s.entries[s.key(serviceID, date, bucket)] = payload
	return nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testService() *domain.Service {
	return &domain.Service{
		ID:              1,
		Name:            "Oil Change",
		ServiceType:     "oil_change",
		DurationMinutes: 60,
		BasePrice:       49.99,
		Active:          true,
	}
}

func newTestUseCase(
	appts AppointmentRepository,
	resvs *stubReservationRepo,
	cal *stubCalendarRepo,
	cache AvailabilityCache,
	now time.Time,
) *UseCase {
	uc := NewUseCase(appts, resvs, cal, cache, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_RegularDay(t *testing.T) {
	// Понедельник 2026-09-14, Чикаго на CDT (UTC-5): 09:00 = 14:00Z
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubReservationRepo{},
		&stubCalendarRepo{cfg: domain.DefaultCalendarConfig(), svc: testService()},
		nil,
		now,
	)

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: "2026-09-14"})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 15)
	assert.Equal(t, time.Date(2026, 9, 14, 14, 0, 0, 0, time.UTC), resp.Slots[0].StartTime)
	assert.Equal(t, time.Date(2026, 9, 14, 21, 0, 0, 0, time.UTC), resp.Slots[14].StartTime)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
	}

	assert.Equal(t, "09:00", resp.BusinessHours.Open)
	assert.Equal(t, "17:00", resp.BusinessHours.Close)
	assert.Equal(t, "Oil Change", resp.ServiceInfo.Name)
	assert.Equal(t, "America/Chicago", resp.TimezoneInfo.Business)
	assert.False(t, resp.Meta.DegradedConfig)
	assert.False(t, resp.Meta.Cached)
}

func TestExecute_EarlyLongAppointmentBlocksFirstSlot(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	cfg := domain.DefaultCalendarConfig()
	cfg.BufferMinutes = domain.MaxBufferMinutes

	// Бронирование 04:30-07:30 местного (180 минут), задолго до открытия;
	// буфер 120 минут тянется до 09:30 и перекрывает первый слот дня
	appts := &rangeAppointmentRepo{appointments: []*domain.Appointment{{
		ID:              9,
		ServiceID:       1,
		ScheduledAt:     time.Date(2026, 9, 14, 9, 30, 0, 0, time.UTC),
		DurationMinutes: domain.MaxServiceDurationMinutes,
		Status:          domain.StatusScheduled,
	}}}
	uc := newTestUseCase(
		appts,
		&stubReservationRepo{},
		&stubCalendarRepo{cfg: cfg, svc: testService()},
		nil,
		now,
	)

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: "2026-09-14"})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 15)

	// 09:00 местного в хвосте буфера, 09:30 начинается ровно на его конце
	assert.False(t, resp.Slots[0].Available)
	assert.True(t, resp.Slots[1].Available)
}

func TestExecute_AppointmentBlocksSlots(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	// Бронирование 10:00-11:00 местного (15:00Z), буфер 15 минут
	appts := &stubAppointmentRepo{appointments: []*domain.Appointment{{
		ID:              7,
		ServiceID:       1,
		ScheduledAt:     time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}}}
	uc := newTestUseCase(
		appts,
		&stubReservationRepo{},
		&stubCalendarRepo{cfg: domain.DefaultCalendarConfig(), svc: testService()},
		nil,
		now,
	)

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: "2026-09-14"})
	require.NoError(t, err)

	availability := make(map[string]bool)
	for _, slot := range resp.Slots {
		availability[slot.StartTime.Format("15:04")] = slot.Available
	}

	// 09:00 местного заканчивается ровно в начале бронирования — свободен
	assert.True(t, availability["14:00"])
	// 09:30..11:00 местного пересекают бронирование или его буфер
	assert.False(t, availability["14:30"])
	assert.False(t, availability["15:00"])
	assert.False(t, availability["15:30"])
	assert.False(t, availability["16:00"])
	// 11:30 местного начинается после конца буфера (11:15)
	assert.True(t, availability["16:30"])
}

func TestExecute_ServiceNotFound(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubReservationRepo{},
		&stubCalendarRepo{cfg: domain.DefaultCalendarConfig(), svcErr: calendarRepo.ErrServiceNotFound},
		nil,
		now,
	)

	_, err := uc.Execute(context.Background(), Request{ServiceID: 99, Date: "2026-09-14"})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveService(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	svc := testService()
	svc.Active = false
	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubReservationRepo{},
		&stubCalendarRepo{cfg: domain.DefaultCalendarConfig(), svc: svc},
		nil,
		now,
	)

	_, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: "2026-09-14"})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_DateInPast(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubReservationRepo{},
		&stubCalendarRepo{cfg: domain.DefaultCalendarConfig(), svc: testService()},
		nil,
		now,
	)

	_, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: "2026-09-09"})
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_DateBeyondAdvanceWindow(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	cfg := domain.DefaultCalendarConfig()
	cfg.AdvanceBookingDays = 30
	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubReservationRepo{},
		&stubCalendarRepo{cfg: cfg, svc: testService()},
		nil,
		now,
	)

	_, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: "2026-12-01"})
	assert.ErrorIs(t, err, ErrDateTooFar)
}

func TestExecute_InvalidRequest(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubReservationRepo{},
		&stubCalendarRepo{cfg: domain.DefaultCalendarConfig(), svc: testService()},
		nil,
		now,
	)

	_, err := uc.Execute(context.Background(), Request{ServiceID: 0, Date: "2026-09-14"})
	assert.ErrorIs(t, err, ErrInvalidServiceID)

	_, err = uc.Execute(context.Background(), Request{ServiceID: 1, Date: "14.09.2026"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(context.Background(), Request{ServiceID: 1, Date: "2026-09-14", ClientTimezone: "Mars/Olympus"})
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestExecute_HolidayReturnsEmptySlots(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	cfg := domain.DefaultCalendarConfig()
	cfg.Holidays = []string{"2026-09-14"}
	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubReservationRepo{},
		&stubCalendarRepo{cfg: cfg, svc: testService()},
		nil,
		now,
	)

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: "2026-09-14"})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.Empty(t, resp.BusinessHours.Open)
}

func TestExecute_DegradedConfigServesDefaults(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubReservationRepo{},
		&stubCalendarRepo{cfgErr: errors.New("connection refused"), svc: testService()},
		nil,
		now,
	)

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: "2026-09-14"})
	require.NoError(t, err)

	assert.True(t, resp.Meta.DegradedConfig)
	require.Len(t, resp.Slots, 15)
}

func TestExecute_CacheHitSkipsRepositories(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	appts := &stubAppointmentRepo{}
	cache := newStubCache()
	uc := newTestUseCase(
		appts,
		&stubReservationRepo{},
		&stubCalendarRepo{cfg: domain.DefaultCalendarConfig(), svc: testService()},
		cache,
		now,
	)

	first, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: "2026-09-14"})
	require.NoError(t, err)
	assert.False(t, first.Meta.Cached)
	assert.Equal(t, 1, appts.calls)

	second, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: "2026-09-14"})
	require.NoError(t, err)
	assert.True(t, second.Meta.Cached)
	assert.Equal(t, 1, appts.calls)
	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_ClientTimezoneRendering(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	cache := newStubCache()
	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubReservationRepo{},
		&stubCalendarRepo{cfg: domain.DefaultCalendarConfig(), svc: testService()},
		cache,
		now,
	)

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: "2026-09-14", ClientTimezone: "America/New_York"})
	require.NoError(t, err)

	// 14:00Z = 10:00 в Нью-Йорке (EDT)
	assert.Equal(t, "2026-09-14 10:00", resp.Slots[0].ClientStartTime)
	assert.Equal(t, "America/New_York", resp.TimezoneInfo.Client)
	// Ответы с клиентским поясом не кешируются
	assert.Empty(t, cache.entries)
}
