package release_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
)

type stubReservationRepo struct {
	resv     *domain.SlotReservation
	getErr   error
	released []int64
}

func (s *stubReservationRepo) GetByID(_ context.Context, _ int64) (*domain.SlotReservation, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.resv, nil
}

func (s *stubReservationRepo) MarkReleased(_ context.Context, id int64) error {
	s.released = append(s.released, id)
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

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func heldReservation() *domain.SlotReservation {
	return &domain.SlotReservation{
		ID:          5,
		ServiceID:   1,
		ScheduledAt: time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC),
		HolderToken: "token-1",
		Status:      domain.ReservationHeld,
		ExpiresAt:   time.Date(2026, 9, 10, 12, 15, 0, 0, time.UTC),
	}
}

func TestExecute_Success(t *testing.T) {
	resvs := &stubReservationRepo{resv: heldReservation()}
	cache := &stubInvalidator{}
	uc := NewUseCase(resvs, stubCalendarRepo{}, cache, noopLogger{})

	err := uc.Execute(context.Background(), Request{ReservationID: 5, HolderToken: "token-1"})
	require.NoError(t, err)

	assert.Equal(t, []int64{5}, resvs.released)
	assert.Equal(t, []string{"2026-09-14"}, cache.calls)
}

func TestExecute_NotFoundIsNoop(t *testing.T) {
	resvs := &stubReservationRepo{getErr: reservationRepo.ErrReservationNotFound}
	uc := NewUseCase(resvs, stubCalendarRepo{}, nil, noopLogger{})

	err := uc.Execute(context.Background(), Request{ReservationID: 5})
	assert.NoError(t, err)
	assert.Empty(t, resvs.released)
}

func TestExecute_TerminalIsNoop(t *testing.T) {
	for _, status := range []domain.ReservationStatus{
		domain.ReservationConverted,
		domain.ReservationExpired,
		domain.ReservationReleased,
	} {
		resv := heldReservation()
		resv.Status = status
		resvs := &stubReservationRepo{resv: resv}
		uc := NewUseCase(resvs, stubCalendarRepo{}, nil, noopLogger{})

		err := uc.Execute(context.Background(), Request{ReservationID: 5, HolderToken: "token-1"})
		assert.NoError(t, err)
		assert.Empty(t, resvs.released)
	}
}

func TestExecute_WrongHolder(t *testing.T) {
	resvs := &stubReservationRepo{resv: heldReservation()}
	uc := NewUseCase(resvs, stubCalendarRepo{}, nil, noopLogger{})

	err := uc.Execute(context.Background(), Request{ReservationID: 5, HolderToken: "someone-else"})
	assert.ErrorIs(t, err, ErrWrongHolder)
	assert.Empty(t, resvs.released)
}

func TestExecute_InvalidID(t *testing.T) {
	uc := NewUseCase(&stubReservationRepo{}, stubCalendarRepo{}, nil, noopLogger{})

	err := uc.Execute(context.Background(), Request{ReservationID: 0})
	assert.ErrorIs(t, err, ErrInvalidReservationID)
}
