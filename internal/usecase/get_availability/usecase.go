package get_availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
)

// Бронирование, начавшееся до открытия, всё ещё может пересекать первые слоты дня:
// окно выборки занятости расширяется назад на наихудшую длину блокирующего
// интервала (максимальная длительность услуги плюс максимальный буфер).
const fetchPad = time.Duration(domain.MaxBlockingSpanMinutes) * time.Minute

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	reservationRepo ReservationRepository
	calendarRepo    CalendarRepository
	cache           AvailabilityCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// cache может быть nil — тогда кеширование отключено.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	reservationRepo ReservationRepository,
	calendarRepo CalendarRepository,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		reservationRepo: reservationRepo,
		calendarRepo:    calendarRepo,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute возвращает слоты услуги на дату с признаком доступности каждого слота
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	uc.logger.Info("GetAvailability: service=%d, date=%s, clientTZ=%q", req.ServiceID, req.Date, req.ClientTimezone)

	// 1. Валидация входных данных
	if err := validate(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Конфигурация календаря; при деградации источника работаем на дефолтах
	cfg, degraded := uc.loadConfig(ctx)

	// 4. Услуга должна существовать и быть активной
	svc, err := uc.calendarRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found", req.ServiceID)
			return nil, fmt.Errorf("%w: id %d", ErrServiceNotFound, req.ServiceID)
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !svc.Active {
		uc.logger.Warn("GetAvailability: service id=%d is inactive", req.ServiceID)
		return nil, fmt.Errorf("%w: id %d is inactive", ErrServiceNotFound, req.ServiceID)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		uc.logger.Error("GetAvailability: unknown business timezone %q: %v", cfg.Timezone, err)
		return nil, fmt.Errorf("%w: timezone %q", ErrInternal, cfg.Timezone)
	}

	date, _ := time.Parse(domain.DateFormat, req.Date)

	// 5. Дата в допустимом окне бронирования
	if err := validateDateWindow(date, now, loc, cfg); err != nil {
		uc.logger.Warn("GetAvailability: date %s rejected: %v", req.Date, err)
		return nil, err
	}

	// 6. Кеш: записи живут в пределах минутной корзины, чтобы ответ
	// не пережил границу lead time
	if cached := uc.fromCache(ctx, req, now); cached != nil {
		return cached, nil
	}

	// 7. Рабочие интервалы дня в UTC
	intervals, err := schedule.ResolveOpenIntervals(date, svc, cfg)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to resolve intervals for service=%d date=%s: %v", req.ServiceID, req.Date, err)
		return nil, fmt.Errorf("%w: failed to resolve intervals: %v", ErrInternal, err)
	}

	resp := uc.newResponse(req, svc, cfg, date, degraded)

	// Выходной или праздник — пустой список слотов, не ошибка
	if len(intervals) == 0 {
		uc.toCache(ctx, req, now, resp)
		return resp, nil
	}

	// 8. Кандидаты с учетом lead time
	candidates := schedule.GenerateCandidates(
		intervals,
		time.Duration(svc.DurationMinutes)*time.Minute,
		time.Duration(cfg.SlotIntervalMinutes)*time.Minute,
		now,
		svc.EffectiveLeadTime(cfg),
	)

	// 9. Занятость: блокирующие бронирования и живые резервы за день
	from := intervals[0].Start.Add(-fetchPad)
	to := intervals[len(intervals)-1].End

	appointments, err := uc.appointmentRepo.GetBlockingInRange(ctx, req.ServiceID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get appointments for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.GetActiveInRange(ctx, req.ServiceID, from, to, now)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 10. Разметка конфликтов
	blocking := schedule.BlockingIntervals(appointments, reservations, svc.EffectiveBuffer(cfg), now)
	slots := schedule.MarkConflicts(candidates, blocking)

	resp.Slots = uc.renderSlots(slots, req.ClientTimezone)

	// 11. Сохраняем в кеш
	uc.toCache(ctx, req, now, resp)

	return resp, nil
}

// loadConfig загружает конфигурацию календаря. Отсутствие строки — штатный случай
// (дефолты), ошибка источника — деградация с флагом в meta.
func (uc *UseCase) loadConfig(ctx context.Context) (*domain.CalendarConfig, bool) {
	cfg, err := uc.calendarRepo.GetConfig(ctx)
	if err == nil {
		return cfg, false
	}
	if errors.Is(err, calendarRepo.ErrConfigNotFound) {
		return domain.DefaultCalendarConfig(), false
	}

	uc.logger.Error("GetAvailability: calendar config unavailable, serving defaults: %v", err)
	return domain.DefaultCalendarConfig(), true
}

func (uc *UseCase) newResponse(req Request, svc *domain.Service, cfg *domain.CalendarConfig, date time.Time, degraded bool) *Response {
	resp := &Response{
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Slots:     []Slot{},
		ServiceInfo: ServiceInfo{
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.BasePrice,
		},
		TimezoneInfo: TimezoneInfo{
			Business: cfg.Timezone,
			Client:   req.ClientTimezone,
		},
		Meta: Meta{DegradedConfig: degraded},
	}

	hours := cfg.HoursFor(date.Weekday())
	if hours.IsOpen && !cfg.IsHoliday(req.Date) {
		openAt, closeAt := hours.Open, hours.Close
		if svc.HasHoursOverride() {
			openAt, closeAt = *svc.OpenOverride, *svc.CloseOverride
		}
		resp.BusinessHours = BusinessHours{Open: string(openAt), Close: string(closeAt)}
	}

	return resp
}

// renderSlots дополняет UTC-мгновения локальным представлением в поясе клиента
func (uc *UseCase) renderSlots(slots []domain.TimeSlot, clientTZ string) []Slot {
	var clientLoc *time.Location
	if clientTZ != "" {
		// Валидность пояса уже проверена в validate
		clientLoc, _ = time.LoadLocation(clientTZ)
	}

	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		slot := Slot{
			StartTime: s.Start,
			EndTime:   s.End,
			Available: s.Available,
		}
		if clientLoc != nil {
			slot.ClientStartTime = s.Start.In(clientLoc).Format("2006-01-02 15:04")
			slot.ClientEndTime = s.End.In(clientLoc).Format("2006-01-02 15:04")
		}
		out = append(out, slot)
	}

	return out
}

// fromCache возвращает закешированный ответ или nil. Ответы с клиентским
// поясом не кешируются: ключ не учитывает пояс.
func (uc *UseCase) fromCache(ctx context.Context, req Request, now time.Time) *Response {
	if uc.cache == nil || req.ClientTimezone != "" {
		return nil
	}

	payload, err := uc.cache.Get(ctx, req.ServiceID, req.Date, now)
	if err != nil {
		return nil
	}

	var resp Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		uc.logger.Warn("GetAvailability: corrupted cache entry service=%d date=%s: %v", req.ServiceID, req.Date, err)
		return nil
	}

	resp.Meta.Cached = true
	return &resp
}

func (uc *UseCase) toCache(ctx context.Context, req Request, now time.Time, resp *Response) {
	if uc.cache == nil || req.ClientTimezone != "" {
		return
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, req.ServiceID, req.Date, now, payload); err != nil {
		uc.logger.Warn("GetAvailability: cache write failed service=%d date=%s: %v", req.ServiceID, req.Date, err)
	}
}
