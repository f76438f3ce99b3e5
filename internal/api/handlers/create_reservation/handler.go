package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	holdSlot "github.com/m04kA/SMC-ScheduleService/internal/usecase/hold_slot"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStartTime     = "некорректное время начала, ожидается RFC3339"
	msgInvalidServiceID     = "некорректный ID услуги"
	msgServiceNotFound      = "услуга не найдена"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgOutsideBusinessHours = "время начала вне рабочих часов"
	msgLeadTimeViolation    = "слишком поздно для бронирования этого слота"
	msgDateTooFar           = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase HoldSlotUseCase
	logger  Logger
}

func NewHandler(useCase HoldSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, holdSlot.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: service_id=%d, start=%s", req.ServiceID, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, holdSlot.ErrServiceNotFound):
			h.logger.Warn("POST /reservations - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, holdSlot.ErrInvalidServiceID):
			handlers.RespondBadRequest(w, msgInvalidServiceID)

		case errors.Is(err, holdSlot.ErrInvalidStartTime):
			handlers.RespondBadRequest(w, msgInvalidStartTime)

		case errors.Is(err, holdSlot.ErrOutsideBusinessHours):
			h.logger.Warn("POST /reservations - Outside business hours: service_id=%d, start=%s", req.ServiceID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideBusinessHours)

		// Слот ближе lead time уже не предлагается в выдаче доступности,
		// поэтому попытка его удержать — конфликт, а не ошибка формата
		case errors.Is(err, holdSlot.ErrLeadTimeViolation):
			h.logger.Warn("POST /reservations - Lead time violation: service_id=%d, start=%s", req.ServiceID, req.StartTime)
			handlers.RespondConflict(w, msgLeadTimeViolation)

		case errors.Is(err, holdSlot.ErrDateTooFar):
			h.logger.Warn("POST /reservations - Date too far: service_id=%d, start=%s", req.ServiceID, req.StartTime)
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("POST /reservations - Failed to hold slot: service_id=%d, start=%s, error=%v",
				req.ServiceID, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, service_id=%d, expires_at=%s",
		result.ReservationID, result.ServiceID, result.ExpiresAt)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
