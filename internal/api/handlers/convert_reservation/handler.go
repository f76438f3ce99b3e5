package convert_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	convertReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/convert_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidReservationID = "некорректный ID резерва"
	msgInvalidCustomer      = "некорректные данные клиента"
	msgReservationNotFound  = "резерв не найден"
	msgWrongHolder          = "резерв принадлежит другому держателю"
	msgReservationExpired   = "резерв истек"
)

type Handler struct {
	useCase ConvertReservationUseCase
	logger  Logger
}

func NewHandler(useCase ConvertReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/convert
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/convert - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req ConvertReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/convert - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reservationID))
	if err != nil {
		switch {
		case errors.Is(err, convertReservation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/convert - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, convertReservation.ErrWrongHolder):
			h.logger.Warn("POST /reservations/{id}/convert - Holder mismatch: reservation_id=%d", reservationID)
			handlers.RespondForbidden(w, msgWrongHolder)

		case errors.Is(err, convertReservation.ErrReservationExpired):
			h.logger.Warn("POST /reservations/{id}/convert - Reservation expired: reservation_id=%d", reservationID)
			handlers.RespondGone(w, msgReservationExpired)

		case errors.Is(err, convertReservation.ErrInvalidReservationID):
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		case errors.Is(err, convertReservation.ErrInvalidCustomer):
			h.logger.Warn("POST /reservations/{id}/convert - Invalid customer data: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidCustomer)

		default:
			h.logger.Error("POST /reservations/{id}/convert - Failed to convert: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/convert - Converted: reservation_id=%d, appointment_id=%d",
		reservationID, result.AppointmentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
