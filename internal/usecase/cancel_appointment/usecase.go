package cancel_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/events"
	appointmentRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/appointment"
	calendarRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/calendar"
)

// Request запрос на отмену бронирования
type Request struct {
	AppointmentID int64
	ByStaff       bool // отмена со стороны персонала, не клиента
	Reason        string
}

// UseCase use case для отмены бронирования.
// Отмена освобождает слот: бронирование перестает блокировать доступность,
// но остается в журнале.
type UseCase struct {
	appointmentRepo AppointmentRepository
	calendarRepo    CalendarRepository
	cache           CacheInvalidator
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// cache и publisher могут быть nil — тогда соответствующие шаги пропускаются.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	calendarRepo CalendarRepository,
	cache CacheInvalidator,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		calendarRepo:    calendarRepo,
		cache:           cache,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute отменяет бронирование
func (uc *UseCase) Execute(ctx context.Context, req Request) error {
	uc.logger.Info("CancelAppointment: id=%d, byStaff=%v", req.AppointmentID, req.ByStaff)

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive, got %d", ErrInvalidAppointmentID, req.AppointmentID)
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidReason, domain.MaxCancellationReasonLength)
	}

	// 2. Бронирование должно существовать
	appt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("CancelAppointment: id=%d not found", req.AppointmentID)
			return fmt.Errorf("%w: id %d", ErrAppointmentNotFound, req.AppointmentID)
		}
		uc.logger.Error("CancelAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 3. Повторная отмена — идемпотентный no-op
	if appt.IsCancelled() {
		return nil
	}

	// 4. Из выполняемых и завершенных статусов отмены нет
	if !appt.CanBeCancelled() {
		uc.logger.Warn("CancelAppointment: id=%d in status %s cannot be cancelled", req.AppointmentID, appt.Status)
		return fmt.Errorf("%w: id %d is %s", ErrNotCancellable, req.AppointmentID, appt.Status)
	}

	status := domain.StatusCancelledByClient
	if req.ByStaff {
		status = domain.StatusCancelledByStaff
	}

	// 5. Переход в отмененный статус с причиной
	if err := uc.appointmentRepo.Cancel(ctx, appt.ID, status, req.Reason); err != nil {
		uc.logger.Error("CancelAppointment: failed to cancel id=%d: %v", req.AppointmentID, err)
		return fmt.Errorf("%w: failed to cancel: %v", ErrInternal, err)
	}

	// 6. Событие и сброс кеша доступности (не фатально)
	now := uc.timeProvider.Now()
	uc.publish(ctx, events.AppointmentCancelled(appt, status, now))
	uc.invalidateCache(ctx, appt.ServiceID, appt.ScheduledAt)

	uc.logger.Info("CancelAppointment: appointment id=%d cancelled with status %s", appt.ID, status)
	return nil
}

func (uc *UseCase) publish(ctx context.Context, event events.Event) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CancelAppointment: failed to publish %s: %v", event.Type, err)
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
		uc.logger.Warn("CancelAppointment: cache invalidation failed service=%d date=%s: %v", serviceID, date, err)
	}
}
