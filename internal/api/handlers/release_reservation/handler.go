package release_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	releaseReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/release_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID резерва"
	msgWrongHolder          = "резерв принадлежит другому держателю"
)

type Handler struct {
	useCase ReleaseReservationUseCase
	logger  Logger
}

func NewHandler(useCase ReleaseReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/reservations/{reservationId}
// Держатель передается заголовком X-Holder-Token.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	err = h.useCase.Execute(r.Context(), releaseReservation.Request{
		ReservationID: reservationID,
		HolderToken:   r.Header.Get("X-Holder-Token"),
	})
	if err != nil {
		switch {
		case errors.Is(err, releaseReservation.ErrInvalidReservationID):
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		case errors.Is(err, releaseReservation.ErrWrongHolder):
			h.logger.Warn("DELETE /reservations/{id} - Holder mismatch: reservation_id=%d", reservationID)
			handlers.RespondForbidden(w, msgWrongHolder)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to release: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Released: reservation_id=%d", reservationID)
	handlers.RespondNoContent(w)
}
