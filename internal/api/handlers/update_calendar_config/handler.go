package update_calendar_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	getCalendarConfig "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_calendar_config"
	updateCalendarConfig "github.com/m04kA/SMC-ScheduleService/internal/usecase/update_calendar_config"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConfig      = "некорректная конфигурация календаря"
)

type Handler struct {
	useCase UpdateCalendarConfigUseCase
	logger  Logger
}

func NewHandler(useCase UpdateCalendarConfigUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/calendar/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateCalendarConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /calendar/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cfg, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("PUT /calendar/config - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConfig)
		return
	}

	updated, err := h.useCase.Execute(r.Context(), cfg)
	if err != nil {
		switch {
		case errors.Is(err, updateCalendarConfig.ErrInvalidConfig):
			h.logger.Warn("PUT /calendar/config - Invalid config: %v", err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		default:
			h.logger.Error("PUT /calendar/config - Failed to update config: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /calendar/config - Config updated: timezone=%s", updated.Timezone)
	handlers.RespondJSON(w, http.StatusOK, getCalendarConfig.FromDomain(updated))
}
