package expirer

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/events"
	calendarRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/calendar"
)

// DefaultInterval период фоновой уборки протухших резервов.
// Занятость фильтрует expires_at на чтении, поэтому уборка не обязана
// успевать к границе TTL: она чистит таблицу и рассылает события.
const DefaultInterval = time.Minute

// ReservationRepository интерфейс репозитория резервов
type ReservationRepository interface {
	ExpireOverdue(ctx context.Context, now time.Time) ([]*domain.SlotReservation, error)
}

// CalendarRepository интерфейс репозитория календарной конфигурации
type CalendarRepository interface {
	GetConfig(ctx context.Context) (*domain.CalendarConfig, error)
}

// CacheInvalidator интерфейс инвалидации кеша доступности
type CacheInvalidator interface {
	Invalidate(ctx context.Context, serviceID int64, date string) error
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
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

// Worker фоновая уборка протухших резервов
type Worker struct {
	reservationRepo ReservationRepository
	calendarRepo    CalendarRepository
	cache           CacheInvalidator
	publisher       EventPublisher
	timeProvider    TimeProvider
	metrics         MetricsRecorder
	logger          Logger
	interval        time.Duration
}

// New создает воркер уборки.
// cache и publisher могут быть nil — тогда соответствующие шаги пропускаются.
func New(
	reservationRepo ReservationRepository,
	calendarRepo CalendarRepository,
	cache CacheInvalidator,
	publisher EventPublisher,
	logger Logger,
	interval time.Duration,
) *Worker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Worker{
		reservationRepo: reservationRepo,
		calendarRepo:    calendarRepo,
		cache:           cache,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		interval:        interval,
	}
}

// WithMetrics подключает счетчик исходов резервирования; без вызова метрики не пишутся
func (w *Worker) WithMetrics(m MetricsRecorder) *Worker {
	w.metrics = m
	return w
}

// Run крутит уборку до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("expirer: started, interval=%s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("expirer: stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep переводит протухшие holds в expired, публикует события
// и сбрасывает кеш по затронутым (service, date)
func (w *Worker) Sweep(ctx context.Context) {
	now := w.timeProvider.Now()

	expired, err := w.reservationRepo.ExpireOverdue(ctx, now)
	if err != nil {
		w.logger.Error("expirer: sweep failed: %v", err)
		return
	}
	if len(expired) == 0 {
		return
	}

	w.logger.Info("expirer: expired %d reservations", len(expired))

	if w.metrics != nil {
		for range expired {
			w.metrics.IncReservation("expired")
		}
	}

	loc := w.businessLocation(ctx)
	for _, resv := range expired {
		if w.publisher != nil {
			if err := w.publisher.Publish(ctx, events.ReservationExpired(resv, now)); err != nil {
				w.logger.Warn("expirer: failed to publish expiry of reservation id=%d: %v", resv.ID, err)
			}
		}
		if w.cache != nil {
			date := resv.ScheduledAt.In(loc).Format(domain.DateFormat)
			if err := w.cache.Invalidate(ctx, resv.ServiceID, date); err != nil {
				w.logger.Warn("expirer: cache invalidation failed service=%d date=%s: %v", resv.ServiceID, date, err)
			}
		}
	}
}

func (w *Worker) businessLocation(ctx context.Context) *time.Location {
	tz := domain.DefaultTimezone
	if cfg, err := w.calendarRepo.GetConfig(ctx); err == nil {
		tz = cfg.Timezone
	} else if !errors.Is(err, calendarRepo.ErrConfigNotFound) {
		w.logger.Warn("expirer: failed to get calendar config: %v", err)
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
