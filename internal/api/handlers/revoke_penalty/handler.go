package revoke_penalty

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Coworkly-BookingService/internal/api/handlers"
	"github.com/m04kA/Coworkly-BookingService/internal/service/penalties"
)

const (
	msgInvalidPenaltyID = "некорректный ID штрафа"
	msgPenaltyNotFound  = "штраф не найден"
)

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

// Handle DELETE /api/v1/penalties/{penaltyId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	penaltyID, err := strconv.ParseInt(mux.Vars(r)["penaltyId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /penalties/{penaltyId} - Invalid penalty ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPenaltyID)
		return
	}

	result, err := h.service.Revoke(r.Context(), penaltyID)
	if err != nil {
		if errors.Is(err, penalties.ErrPenaltyNotFound) {
			h.logger.Warn("DELETE /penalties/{penaltyId} - Penalty not found: penalty_id=%d", penaltyID)
			handlers.RespondNotFound(w, msgPenaltyNotFound)
			return
		}

		h.logger.Error("DELETE /penalties/{penaltyId} - Failed to revoke penalty: penalty_id=%d, error=%v",
			penaltyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /penalties/{penaltyId} - Penalty revoked: penalty_id=%d", penaltyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
