package update_calendar_config

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

type UpdateCalendarConfigUseCase interface {
	Execute(ctx context.Context, cfg *domain.CalendarConfig) (*domain.CalendarConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
