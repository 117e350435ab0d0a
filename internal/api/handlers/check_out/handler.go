package check_out

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Coworkly-BookingService/internal/api/handlers"
	"github.com/m04kA/Coworkly-BookingService/internal/service/visits"
)

const (
	msgInvalidVisitID = "некорректный ID визита"
	msgVisitNotFound  = "визит не найден"
	msgVisitNotActive = "визит уже завершен"
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

// Handle POST /api/v1/visits/{visitId}/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	visitID, err := strconv.ParseInt(mux.Vars(r)["visitId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /visits/{visitId}/checkout - Invalid visit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVisitID)
		return
	}

	result, err := h.service.CheckOut(r.Context(), visitID)
	if err != nil {
		switch {
		case errors.Is(err, visits.ErrVisitNotFound):
			h.logger.Warn("POST /visits/{visitId}/checkout - Visit not found: visit_id=%d", visitID)
			handlers.RespondNotFound(w, msgVisitNotFound)

		case errors.Is(err, visits.ErrVisitNotActive):
			h.logger.Warn("POST /visits/{visitId}/checkout - Visit not active: visit_id=%d", visitID)
			handlers.RespondConflict(w, msgVisitNotActive)

		default:
			h.logger.Error("POST /visits/{visitId}/checkout - Failed to check out: visit_id=%d, error=%v",
				visitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /visits/{visitId}/checkout - Visit completed: visit_id=%d", visitID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
