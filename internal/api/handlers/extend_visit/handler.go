package extend_visit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Coworkly-BookingService/internal/api/handlers"
	"github.com/m04kA/Coworkly-BookingService/internal/service/visits"
	"github.com/m04kA/Coworkly-BookingService/internal/service/visits/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidVisitID     = "некорректный ID визита"
	msgVisitNotFound      = "визит не найден"
	msgVisitNotActive     = "визит уже завершен"
	msgInvalidExtension   = "новое плановое окончание должно быть позже текущего"
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

// Handle POST /api/v1/visits/{visitId}/extend
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	visitID, err := strconv.ParseInt(mux.Vars(r)["visitId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /visits/{visitId}/extend - Invalid visit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVisitID)
		return
	}

	var req models.ExtendVisitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /visits/{visitId}/extend - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Extend(r.Context(), visitID, &req)
	if err != nil {
		switch {
		case errors.Is(err, visits.ErrVisitNotFound):
			h.logger.Warn("POST /visits/{visitId}/extend - Visit not found: visit_id=%d", visitID)
			handlers.RespondNotFound(w, msgVisitNotFound)

		case errors.Is(err, visits.ErrVisitNotActive):
			h.logger.Warn("POST /visits/{visitId}/extend - Visit not active: visit_id=%d", visitID)
			handlers.RespondConflict(w, msgVisitNotActive)

		case errors.Is(err, visits.ErrInvalidExtension):
			h.logger.Warn("POST /visits/{visitId}/extend - Invalid extension: visit_id=%d", visitID)
			handlers.RespondBadRequest(w, msgInvalidExtension)

		default:
			h.logger.Error("POST /visits/{visitId}/extend - Failed to extend visit: visit_id=%d, error=%v",
				visitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /visits/{visitId}/extend - Visit extended: visit_id=%d", visitID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
