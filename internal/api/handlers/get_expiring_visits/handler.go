package get_expiring_visits

import (
	"net/http"
	"strconv"

	"github.com/m04kA/Coworkly-BookingService/internal/api/handlers"
)

const msgInvalidWindow = "некорректное значение withinMinutes"

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

// Handle GET /api/v1/visits/expiring?withinMinutes=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	withinMinutes := 0

	if windowStr := r.URL.Query().Get("withinMinutes"); windowStr != "" {
		parsed, err := strconv.Atoi(windowStr)
		if err != nil || parsed < 0 {
			h.logger.Warn("GET /visits/expiring - Invalid window: %s", windowStr)
			handlers.RespondBadRequest(w, msgInvalidWindow)
			return
		}
		withinMinutes = parsed
	}

	result, err := h.service.ListExpiring(r.Context(), withinMinutes)
	if err != nil {
		h.logger.Error("GET /visits/expiring - Failed to list expiring visits: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /visits/expiring - Expiring visits retrieved: count=%d", len(result.Visits))
	handlers.RespondJSON(w, http.StatusOK, result)
}
