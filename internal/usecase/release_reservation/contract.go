package release_reservation

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ReservationRepository интерфейс репозитория резервов
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SlotReservation, error)
	MarkReleased(ctx context.Context, id int64) error
}

// CalendarRepository интерфейс репозитория календарной конфигурации
type CalendarRepository interface {
	GetConfig(ctx context.Context) (*domain.CalendarConfig, error)
}

// CacheInvalidator интерфейс инвалидации кеша доступности
type CacheInvalidator interface {
	Invalidate(ctx context.Context, serviceID int64, date string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
