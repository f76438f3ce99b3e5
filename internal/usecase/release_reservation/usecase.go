package release_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/calendar"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
)

// Request запрос на освобождение резерва
type Request struct {
	ReservationID int64
	HolderToken   string
}

// UseCase use case для добровольного освобождения резерва.
// Операция идемпотентна: повторный release, release протухшего или
// несуществующего резерва — штатный no-op.
type UseCase struct {
	reservationRepo ReservationRepository
	calendarRepo    CalendarRepository
	cache           CacheInvalidator
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// cache может быть nil — тогда инвалидация кеша отключена.
func NewUseCase(
	reservationRepo ReservationRepository,
	calendarRepo CalendarRepository,
	cache CacheInvalidator,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		calendarRepo:    calendarRepo,
		cache:           cache,
		logger:          logger,
	}
}

// Execute освобождает резерв держателя
func (uc *UseCase) Execute(ctx context.Context, req Request) error {
	uc.logger.Info("ReleaseReservation: id=%d", req.ReservationID)

	// 1. Валидация входных данных
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive, got %d", ErrInvalidReservationID, req.ReservationID)
	}

	// 2. Резерв; отсутствие — идемпотентный no-op
	resv, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil
		}
		uc.logger.Error("ReleaseReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 3. Чужой резерв освободить нельзя
	if req.HolderToken != "" && resv.HolderToken != req.HolderToken {
		uc.logger.Warn("ReleaseReservation: holder mismatch for id=%d", req.ReservationID)
		return fmt.Errorf("%w: id %d", ErrWrongHolder, req.ReservationID)
	}

	// 4. Терминальный резерв — no-op
	if resv.IsTerminal() {
		return nil
	}

	// 5. Переход held → released; гонка с конвертацией/уборкой тоже no-op
	if err := uc.reservationRepo.MarkReleased(ctx, resv.ID); err != nil {
		uc.logger.Error("ReleaseReservation: failed to mark released id=%d: %v", req.ReservationID, err)
		return fmt.Errorf("%w: failed to mark released: %v", ErrInternal, err)
	}

	// 6. Сброс кеша доступности (не фатально)
	uc.invalidateCache(ctx, resv.ServiceID, resv.ScheduledAt)

	uc.logger.Info("ReleaseReservation: reservation id=%d released", resv.ID)
	return nil
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
		uc.logger.Warn("ReleaseReservation: cache invalidation failed service=%d date=%s: %v", serviceID, date, err)
	}
}
