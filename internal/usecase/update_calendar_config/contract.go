package update_calendar_config

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// CalendarRepository интерфейс репозитория календарной конфигурации
type CalendarRepository interface {
	UpdateConfig(ctx context.Context, cfg *domain.CalendarConfig) (*domain.CalendarConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
