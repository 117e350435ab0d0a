package get_active_visits

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

// Handle GET /api/v1/visits/active
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /visits/active - Failed to list active visits: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /visits/active - Active visits retrieved: count=%d", len(result.Visits))
	handlers.RespondJSON(w, http.StatusOK, result)
}
