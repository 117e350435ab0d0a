package get_penalties

import (
	"net/http"
	"strconv"

	"github.com/m04kA/Coworkly-BookingService/internal/api/handlers"
	"github.com/m04kA/Coworkly-BookingService/internal/domain"
)

const msgInvalidUserID = "некорректный ID пользователя"

type Handler struct {
	service PenaltyService
	logger  Logger
}

func NewHandler(service PenaltyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/penalties?userId=&activeOnly=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var filter domain.PenaltyFilter

	if userIDStr := r.URL.Query().Get("userId"); userIDStr != "" {
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /penalties - Invalid user ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidUserID)
			return
		}
		filter.UserID = &userID
	}

	filter.ActiveOnly = r.URL.Query().Get("activeOnly") == "true"

	result, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /penalties - Failed to list penalties: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /penalties - Penalties retrieved: count=%d", len(result.Penalties))
	handlers.RespondJSON(w, http.StatusOK, result)
}
