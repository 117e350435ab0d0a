package get_spaces

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Coworkly-BookingService/internal/api/handlers"
)

const msgInvalidLocationID = "некорректный ID локации"

type Handler struct {
	service SpaceService
	logger  Logger
}

func NewHandler(service SpaceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/spaces
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /spaces - Failed to list spaces: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /spaces - Spaces retrieved: count=%d", len(result.Spaces))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleByLocation GET /api/v1/locations/{locationId}/spaces
func (h *Handler) HandleByLocation(w http.ResponseWriter, r *http.Request) {
	locationID, err := strconv.ParseInt(mux.Vars(r)["locationId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /locations/{locationId}/spaces - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	result, err := h.service.ListActiveByLocation(r.Context(), locationID)
	if err != nil {
		h.logger.Error("GET /locations/{locationId}/spaces - Failed to list spaces: location_id=%d, error=%v",
			locationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /locations/{locationId}/spaces - Spaces retrieved: location_id=%d, count=%d",
		locationID, len(result.Spaces))
	handlers.RespondJSON(w, http.StatusOK, result)
}
