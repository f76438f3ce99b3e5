package get_calendar_config

import (
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
)

type Handler struct {
	useCase GetCalendarConfigUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarConfigUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("GET /calendar/config - Failed to get config: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(cfg))
}
