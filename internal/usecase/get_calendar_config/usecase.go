package get_calendar_config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/calendar"
)

var ErrInternal = errors.New("get_calendar_config: internal error")

// CalendarRepository интерфейс репозитория календарной конфигурации
type CalendarRepository interface {
	GetConfig(ctx context.Context) (*domain.CalendarConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// UseCase use case для получения календарной конфигурации
type UseCase struct {
	calendarRepo CalendarRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(calendarRepo CalendarRepository, logger Logger) *UseCase {
	return &UseCase{
		calendarRepo: calendarRepo,
		logger:       logger,
	}
}

// Execute возвращает действующую конфигурацию календаря.
// Отсутствие сохраненной конфигурации — штатный случай: отдаются дефолты.
func (uc *UseCase) Execute(ctx context.Context) (*domain.CalendarConfig, error) {
	cfg, err := uc.calendarRepo.GetConfig(ctx)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrConfigNotFound) {
			return domain.DefaultCalendarConfig(), nil
		}
		uc.logger.Error("GetCalendarConfig: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	return cfg, nil
}
