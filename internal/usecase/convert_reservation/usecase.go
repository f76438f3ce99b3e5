package convert_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/events"
	calendarRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/calendar"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
)

// UseCase use case для конвертации резерва в подтвержденное бронирование
type UseCase struct {
	reservationRepo ReservationRepository
	appointmentRepo AppointmentRepository
	calendarRepo    CalendarRepository
	txManager       TransactionManager
	cache           CacheInvalidator
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// cache и publisher могут быть nil — тогда соответствующие шаги пропускаются.
func NewUseCase(
	reservationRepo ReservationRepository,
	appointmentRepo AppointmentRepository,
	calendarRepo CalendarRepository,
	txManager TransactionManager,
	cache CacheInvalidator,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		appointmentRepo: appointmentRepo,
		calendarRepo:    calendarRepo,
		txManager:       txManager,
		cache:           cache,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute конвертирует held-резерв в бронирование со статусом scheduled.
// Переход выполняется в сериализуемой транзакции: резерв покидает held
// ровно один раз, повторная конвертация невозможна.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	uc.logger.Info("ConvertReservation: id=%d", req.ReservationID)

	// 1. Валидация входных данных
	if err := validate(req); err != nil {
		uc.logger.Warn("ConvertReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var appointment *domain.Appointment
	var reservation *domain.SlotReservation

	// 3. Чтение резерва, создание бронирования и переход held → converted
	// в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Резерв (FOR UPDATE внутри транзакции)
		resv, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return fmt.Errorf("%w: id %d", ErrReservationNotFound, req.ReservationID)
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 3.2. Проверка держателя до раскрытия состояния резерва
		if resv.HolderToken != req.HolderToken {
			return fmt.Errorf("%w: id %d", ErrWrongHolder, req.ReservationID)
		}

		// 3.3. Терминальные состояния: expired — это "опоздал", остальное — "нет такого"
		if resv.Status == domain.ReservationExpired {
			return fmt.Errorf("%w: id %d", ErrReservationExpired, req.ReservationID)
		}
		if resv.Status != domain.ReservationHeld {
			return fmt.Errorf("%w: id %d is %s", ErrReservationNotFound, req.ReservationID, resv.Status)
		}

		// 3.4. Held, но TTL уже вышел — фон еще не прибрал
		if !now.Before(resv.ExpiresAt) {
			return fmt.Errorf("%w: id %d expired at %s", ErrReservationExpired, req.ReservationID, resv.ExpiresAt.Format(time.RFC3339))
		}

		// 3.5. Бронирование наследует слот резерва
		appt, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ServiceID:       resv.ServiceID,
			ScheduledAt:     resv.ScheduledAt,
			DurationMinutes: resv.DurationMinutes,
			Status:          domain.StatusScheduled,
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			Notes:           req.Notes,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 3.6. Ровно один переход из held
		if err := uc.reservationRepo.MarkConverted(txCtx, resv.ID); err != nil {
			if errors.Is(err, reservationRepo.ErrNotHeld) {
				return fmt.Errorf("%w: id %d", ErrReservationNotFound, req.ReservationID)
			}
			return fmt.Errorf("%w: failed to mark converted: %v", ErrInternal, err)
		}

		appointment = appt
		reservation = resv
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrReservationNotFound) || errors.Is(err, ErrWrongHolder) || errors.Is(err, ErrReservationExpired) {
			uc.logger.Warn("ConvertReservation: id=%d rejected: %v", req.ReservationID, err)
			return nil, err
		}
		uc.logger.Error("ConvertReservation: transaction failed for id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	// 4. Событие и сброс кеша доступности (не фатально)
	uc.publish(ctx, events.AppointmentCreated(appointment, now))
	uc.invalidateCache(ctx, reservation.ServiceID, reservation.ScheduledAt)

	uc.logger.Info("ConvertReservation: reservation id=%d converted to appointment id=%d", reservation.ID, appointment.ID)

	return &Response{
		AppointmentID: appointment.ID,
		ServiceID:     appointment.ServiceID,
		StartTime:     appointment.ScheduledAt,
		EndTime:       appointment.EndsAt(),
		Status:        string(appointment.Status),
		CustomerName:  appointment.CustomerName,
		CustomerEmail: appointment.CustomerEmail,
		CreatedAt:     appointment.CreatedAt,
	}, nil
}

func (uc *UseCase) publish(ctx context.Context, event events.Event) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("ConvertReservation: failed to publish %s: %v", event.Type, err)
	}
}

// invalidateCache сбрасывает кеш по дате слота в часовом поясе бизнеса
func (uc *UseCase) invalidateCache(ctx context.Context, serviceID int64, scheduledAt time.Time) {
	if uc.cache == nil {
		return
	}

	date := scheduledAt.UTC().Format(domain.DateFormat)
	if cfg, err := uc.calendarRepo.GetConfig(ctx); err == nil || errors.Is(err, calendarRepo.ErrConfigNotFound) {
		if err != nil {
			cfg = domain.DefaultCalendarConfig()
		}
		if loc, locErr := time.LoadLocation(cfg.Timezone); locErr == nil {
			date = scheduledAt.In(loc).Format(domain.DateFormat)
		}
	}

	if err := uc.cache.Invalidate(ctx, serviceID, date); err != nil {
		uc.logger.Warn("ConvertReservation: cache invalidation failed service=%d date=%s: %v", serviceID, date, err)
	}
}
