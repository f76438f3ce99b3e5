package update_calendar_config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type stubCalendarRepo struct {
	updated *domain.CalendarConfig
}

func (s *stubCalendarRepo) UpdateConfig(_ context.Context, cfg *domain.CalendarConfig) (*domain.CalendarConfig, error) {
	s.updated = cfg
	return cfg, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestExecute_Success(t *testing.T) {
	repo := &stubCalendarRepo{}
	uc := NewUseCase(repo, noopLogger{})

	cfg := domain.DefaultCalendarConfig()
	cfg.Holidays = []string{"2026-12-25"}

	updated, err := uc.Execute(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg, updated)
	assert.Equal(t, cfg, repo.updated)
}

func TestExecute_Rejections(t *testing.T) {
	uc := NewUseCase(&stubCalendarRepo{}, noopLogger{})

	tests := []struct {
		name   string
		mutate func(cfg *domain.CalendarConfig)
	}{
		{"unknown timezone", func(cfg *domain.CalendarConfig) { cfg.Timezone = "Mars/Olympus" }},
		{"slot interval too small", func(cfg *domain.CalendarConfig) { cfg.SlotIntervalMinutes = 1 }},
		{"lead time too large", func(cfg *domain.CalendarConfig) { cfg.LeadTimeMinutes = 20000 }},
		{"hold ttl out of range", func(cfg *domain.CalendarConfig) { cfg.HoldTTLMinutes = 60 }},
		{"advance days too large", func(cfg *domain.CalendarConfig) { cfg.AdvanceBookingDays = 1000 }},
		{"open after close", func(cfg *domain.CalendarConfig) {
			cfg.Hours[1].Open = types.TimeString("18:00")
			cfg.Hours[1].Close = types.TimeString("09:00")
		}},
		{"bad holiday format", func(cfg *domain.CalendarConfig) { cfg.Holidays = []string{"25.12.2026"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultCalendarConfig()
			tt.mutate(cfg)

			_, err := uc.Execute(context.Background(), cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
