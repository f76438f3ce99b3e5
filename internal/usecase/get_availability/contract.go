package get_availability

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
	GetActiveInRange(ctx context.Context, serviceID int64, from, to, now time.Time) ([]*domain.SlotReservation, error)
}

// CalendarRepository интерфейс репозитория календарной конфигурации и услуг
type CalendarRepository interface {
	GetConfig(ctx context.Context) (*domain.CalendarConfig, error)
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
}

// AvailabilityCache интерфейс короткоживущего кеша ответов
type AvailabilityCache interface {
	Get(ctx context.Context, serviceID int64, date string, bucket time.Time) ([]byte, error)
	Set(ctx context.Context, serviceID int64, date string, bucket time.Time, payload []byte) error
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
