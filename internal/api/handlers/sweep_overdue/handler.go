package sweep_overdue

import (
	"net/http"

	"github.com/m04kA/Coworkly-BookingService/internal/api/handlers"
)

type Handler struct {
	service VisitService
	logger  Logger
}

func NewHandler(service VisitService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/visits/overdue
// Ручной запуск прохода по просроченным визитам, тот же код выполняет
// периодический тикер в main
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SweepOverdue(r.Context())
	if err != nil {
		h.logger.Error("POST /visits/overdue - Failed to sweep overdue visits: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /visits/overdue - Sweep completed: marked=%d", result.MarkedOverdue)
	handlers.RespondJSON(w, http.StatusOK, result)
}
