package hold_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	GetBlockingInRange(ctx context.Context, serviceID int64, from, to time.Time) ([]*domain.Appointment, error)
}

// ReservationRepository интерфейс репозитория резервов
type ReservationRepository interface {
	Create(ctx context.Context, resv *domain.SlotReservation) (*domain.SlotReservation, error)
	GetActiveInRange(ctx context.Context, serviceID int64, from, to, now time.Time) ([]*domain.SlotReservation, error)
	ExpireOverdueBySlot(ctx context.Context, serviceID int64, slotKey string, now time.Time) error
}

// CalendarRepository интерфейс репозитория календарной конфигурации и услуг
type CalendarRepository interface {
	GetConfig(ctx context.Context) (*domain.CalendarConfig, error)
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
}

// TransactionManager интерфейс менеджера сериализуемых транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CacheInvalidator интерфейс инвалидации кеша доступности
type CacheInvalidator interface {
	Invalidate(ctx context.Context, serviceID int64, date string) error
}

// MetricsRecorder интерфейс записи исходов резервирования
type MetricsRecorder interface {
	IncReservation(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
