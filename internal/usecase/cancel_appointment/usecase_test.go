package cancel_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/events"
	appointmentRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/appointment"
)

type stubAppointmentRepo struct {
	appt      *domain.Appointment
	getErr    error
	cancelled []domain.AppointmentStatus
	reasons   []string
}

func (s *stubAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.appt, nil
}

func (s *stubAppointmentRepo) Cancel(_ context.Context, _ int64, status domain.AppointmentStatus, reason string) error {
	s.cancelled = append(s.cancelled, status)
	s.reasons = append(s.reasons, reason)
	return nil
}

type stubCalendarRepo struct{}

func (stubCalendarRepo) GetConfig(_ context.Context) (*domain.CalendarConfig, error) {
	return domain.DefaultCalendarConfig(), nil
}

type stubInvalidator struct {
	calls []string
}

func (s *stubInvalidator) Invalidate(_ context.Context, _ int64, date string) error {
	s.calls = append(s.calls, date)
	return nil
}

type stubPublisher struct {
	published []events.Event
}

func (s *stubPublisher) Publish(_ context.Context, event events.Event) error {
	s.published = append(s.published, event)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func scheduledAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              9,
		ServiceID:       1,
		ScheduledAt:     time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusScheduled,
	}
}

func TestExecute_ClientCancel(t *testing.T) {
	appts := &stubAppointmentRepo{appt: scheduledAppointment()}
	cache := &stubInvalidator{}
	pub := &stubPublisher{}
	uc := NewUseCase(appts, stubCalendarRepo{}, cache, pub, noopLogger{})

	err := uc.Execute(context.Background(), Request{AppointmentID: 9, Reason: "changed plans"})
	require.NoError(t, err)

	assert.Equal(t, []domain.AppointmentStatus{domain.StatusCancelledByClient}, appts.cancelled)
	assert.Equal(t, []string{"changed plans"}, appts.reasons)
	assert.Equal(t, []string{"2026-09-14"}, cache.calls)
	require.Len(t, pub.published, 1)
	assert.Equal(t, events.TypeAppointmentCancelled, pub.published[0].Type)
	assert.Equal(t, string(domain.StatusCancelledByClient), pub.published[0].Status)
}

func TestExecute_StaffCancel(t *testing.T) {
	appts := &stubAppointmentRepo{appt: scheduledAppointment()}
	uc := NewUseCase(appts, stubCalendarRepo{}, nil, nil, noopLogger{})

	err := uc.Execute(context.Background(), Request{AppointmentID: 9, ByStaff: true})
	require.NoError(t, err)
	assert.Equal(t, []domain.AppointmentStatus{domain.StatusCancelledByStaff}, appts.cancelled)
}

func TestExecute_AlreadyCancelledIsNoop(t *testing.T) {
	appt := scheduledAppointment()
	appt.Status = domain.StatusCancelledByClient
	appts := &stubAppointmentRepo{appt: appt}
	uc := NewUseCase(appts, stubCalendarRepo{}, nil, nil, noopLogger{})

	err := uc.Execute(context.Background(), Request{AppointmentID: 9})
	assert.NoError(t, err)
	assert.Empty(t, appts.cancelled)
}

func TestExecute_NotCancellable(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusNoShow,
		domain.StatusArchived,
	} {
		appt := scheduledAppointment()
		appt.Status = status
		uc := NewUseCase(&stubAppointmentRepo{appt: appt}, stubCalendarRepo{}, nil, nil, noopLogger{})

		err := uc.Execute(context.Background(), Request{AppointmentID: 9})
		assert.ErrorIs(t, err, ErrNotCancellable, "status %s", status)
	}
}

func TestExecute_NotFound(t *testing.T) {
	appts := &stubAppointmentRepo{getErr: appointmentRepo.ErrAppointmentNotFound}
	uc := NewUseCase(appts, stubCalendarRepo{}, nil, nil, noopLogger{})

	err := uc.Execute(context.Background(), Request{AppointmentID: 9})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
