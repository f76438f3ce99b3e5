package hold_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/calendar"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

// Блокирующее бронирование может начинаться задолго до запрошенного слота:
// окно выборки занятости расширяется в обе стороны на наихудшую длину
// блокирующего интервала (максимальная длительность услуги плюс максимальный буфер).
const fetchPad = time.Duration(domain.MaxBlockingSpanMinutes) * time.Minute

// UseCase use case для удержания слота (временного резерва)
type UseCase struct {
	appointmentRepo AppointmentRepository
	reservationRepo ReservationRepository
	calendarRepo    CalendarRepository
	txManager       TransactionManager
	cache           CacheInvalidator
	timeProvider    TimeProvider
	metrics         MetricsRecorder
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// cache может быть nil — тогда инвалидация кеша отключена.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	reservationRepo ReservationRepository,
	calendarRepo CalendarRepository,
	txManager TransactionManager,
	cache CacheInvalidator,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		reservationRepo: reservationRepo,
		calendarRepo:    calendarRepo,
		txManager:       txManager,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithMetrics подключает счетчик исходов резервирования; без вызова метрики не пишутся
func (uc *UseCase) WithMetrics(m MetricsRecorder) *UseCase {
	uc.metrics = m
	return uc
}

func (uc *UseCase) recordOutcome(outcome string) {
	if uc.metrics != nil {
		uc.metrics.IncReservation(outcome)
	}
}

// Execute удерживает слот за держателем на время TTL.
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// при любой форме проигрыша гонки (конфликт сериализации, уникальный индекс,
// занятый слот) клиент получает один и тот же ответ — слот недоступен.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	uc.logger.Info("HoldSlot: service=%d, start=%s", req.ServiceID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validate(req); err != nil {
		uc.logger.Warn("HoldSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Конфигурация календаря; отсутствие строки — дефолты
	cfg, err := uc.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	// 4. Услуга должна существовать и быть активной
	svc, err := uc.calendarRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrServiceNotFound) {
			uc.logger.Warn("HoldSlot: service id=%d not found", req.ServiceID)
			return nil, fmt.Errorf("%w: id %d", ErrServiceNotFound, req.ServiceID)
		}
		uc.logger.Error("HoldSlot: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !svc.Active {
		uc.logger.Warn("HoldSlot: service id=%d is inactive", req.ServiceID)
		return nil, fmt.Errorf("%w: id %d is inactive", ErrServiceNotFound, req.ServiceID)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		uc.logger.Error("HoldSlot: unknown business timezone %q: %v", cfg.Timezone, err)
		return nil, fmt.Errorf("%w: timezone %q", ErrInternal, cfg.Timezone)
	}

	start := req.StartTime.UTC()
	duration := time.Duration(svc.DurationMinutes) * time.Minute

	// 5. Lead time и горизонт бронирования
	if err := validateBookingWindow(start, now, svc.EffectiveLeadTime(cfg), loc, cfg); err != nil {
		uc.logger.Warn("HoldSlot: booking window rejected start=%s: %v", start.Format(time.RFC3339), err)
		return nil, err
	}

	// 6. Слот на сетке и внутри рабочих часов (дата в поясе бизнеса)
	localDate := start.In(loc)
	date := time.Date(localDate.Year(), localDate.Month(), localDate.Day(), 0, 0, 0, 0, time.UTC)

	intervals, err := schedule.ResolveOpenIntervals(date, svc, cfg)
	if err != nil {
		uc.logger.Error("HoldSlot: failed to resolve intervals for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to resolve intervals: %v", ErrInternal, err)
	}

	if err := validateStartWithinHours(start, duration, intervals, time.Duration(cfg.SlotIntervalMinutes)*time.Minute); err != nil {
		uc.logger.Warn("HoldSlot: start=%s rejected: %v", start.Format(time.RFC3339), err)
		return nil, err
	}

	holderToken := req.HolderToken
	if holderToken == "" {
		holderToken = uuid.NewString()
	}

	var result *domain.SlotReservation

	// 7. Проверка занятости и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		from := start.Add(-fetchPad)
		to := start.Add(duration + fetchPad)

		// 7.1. Блокирующие бронирования (FOR UPDATE внутри транзакции)
		appointments, err := uc.appointmentRepo.GetBlockingInRange(txCtx, req.ServiceID, from, to)
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 7.2. Живые резервы
		reservations, err := uc.reservationRepo.GetActiveInRange(txCtx, req.ServiceID, from, to, now)
		if err != nil {
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 7.3. Пересечение с занятостью
		blocking := schedule.BlockingIntervals(appointments, reservations, svc.EffectiveBuffer(cfg), now)
		if schedule.IsStartBlocked(start, duration, blocking) {
			return fmt.Errorf("%w: start=%s", ErrSlotNotAvailable, start.Format(time.RFC3339))
		}

		slotKey := domain.SlotKeyFor(req.ServiceID, start)

		// 7.4. Протухший hold этого слота еще держит уникальный индекс:
		// освобождаем его, не дожидаясь фоновой уборки
		if err := uc.reservationRepo.ExpireOverdueBySlot(txCtx, req.ServiceID, slotKey, now); err != nil {
			return fmt.Errorf("%w: failed to expire overdue holds: %v", ErrInternal, err)
		}

		// 7.5. Вставка резерва; TTL фиксируется при создании и не продлевается
		created, err := uc.reservationRepo.Create(txCtx, &domain.SlotReservation{
			ServiceID:       req.ServiceID,
			ScheduledAt:     start,
			DurationMinutes: svc.DurationMinutes,
			SlotKey:         slotKey,
			HolderToken:     holderToken,
			Status:          domain.ReservationHeld,
			ExpiresAt:       now.Add(cfg.HoldTTL()),
		})
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигрыш гонки в любой форме — слот недоступен
		if errors.Is(err, reservationRepo.ErrDuplicateSlot) || errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("HoldSlot: lost race for service=%d start=%s: %v", req.ServiceID, start.Format(time.RFC3339), err)
			uc.recordOutcome("conflict")
			return nil, fmt.Errorf("%w: start=%s", ErrSlotNotAvailable, start.Format(time.RFC3339))
		}
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.recordOutcome("conflict")
			return nil, err
		}
		uc.logger.Error("HoldSlot: transaction failed for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.recordOutcome("held")

	// 8. Инвалидация кеша доступности (не фатально)
	uc.invalidateCache(ctx, req.ServiceID, localDate.Format(domain.DateFormat))

	uc.logger.Info("HoldSlot: reservation id=%d created for service=%d start=%s, expires=%s",
		result.ID, req.ServiceID, start.Format(time.RFC3339), result.ExpiresAt.Format(time.RFC3339))

	return &Response{
		ReservationID: result.ID,
		ServiceID:     result.ServiceID,
		StartTime:     result.ScheduledAt,
		EndTime:       result.EndsAt(),
		HolderToken:   result.HolderToken,
		ExpiresAt:     result.ExpiresAt,
		Status:        string(result.Status),
	}, nil
}

// loadConfig загружает конфигурацию календаря; отсутствие строки — дефолты
func (uc *UseCase) loadConfig(ctx context.Context) (*domain.CalendarConfig, error) {
	cfg, err := uc.calendarRepo.GetConfig(ctx)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, calendarRepo.ErrConfigNotFound) {
		return domain.DefaultCalendarConfig(), nil
	}

	uc.logger.Error("HoldSlot: failed to get calendar config: %v", err)
	return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
}

func (uc *UseCase) invalidateCache(ctx context.Context, serviceID int64, date string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, serviceID, date); err != nil {
		uc.logger.Warn("HoldSlot: cache invalidation failed service=%d date=%s: %v", serviceID, date, err)
	}
}
