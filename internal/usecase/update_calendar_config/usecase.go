package update_calendar_config

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// UseCase use case для обновления календарной конфигурации.
// Кеш доступности специально не сбрасывается: записи живут меньше минуты,
// и смена конфигурации докатывается сама.
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

// Execute валидирует и сохраняет конфигурацию календаря
func (uc *UseCase) Execute(ctx context.Context, cfg *domain.CalendarConfig) (*domain.CalendarConfig, error) {
	// 1. Валидация бизнес-границ
	if err := validate(cfg); err != nil {
		uc.logger.Warn("UpdateCalendarConfig: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохранение
	updated, err := uc.calendarRepo.UpdateConfig(ctx, cfg)
	if err != nil {
		uc.logger.Error("UpdateCalendarConfig: failed to update config: %v", err)
		return nil, fmt.Errorf("%w: failed to update config: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateCalendarConfig: config updated, timezone=%s, slotInterval=%d",
		updated.Timezone, updated.SlotIntervalMinutes)
	return updated, nil
}
