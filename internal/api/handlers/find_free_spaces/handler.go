package find_free_spaces

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/Coworkly-BookingService/internal/api/handlers"
	"github.com/m04kA/Coworkly-BookingService/internal/service/spaces"
	"github.com/m04kA/Coworkly-BookingService/internal/service/spaces/models"
)

const (
	msgInvalidLocationID = "некорректный ID локации"
	msgInvalidTimestamps = "некорректный формат времени, ожидается RFC3339"
	msgInvalidInterval   = "конец интервала должен быть позже начала"
	msgInvalidCapacity   = "минимальная вместимость должна быть не меньше 1"
)

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

// Handle GET /api/v1/spaces/free?locationId=&from=&to=&minCapacity=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	locationID, err := strconv.ParseInt(query.Get("locationId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /spaces/free - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	from, err := time.Parse(time.RFC3339, query.Get("from"))
	if err != nil {
		h.logger.Warn("GET /spaces/free - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamps)
		return
	}

	to, err := time.Parse(time.RFC3339, query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /spaces/free - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamps)
		return
	}

	req := &models.FindFreeRequest{
		LocationID: locationID,
		From:       from,
		To:         to,
	}

	if capacityStr := query.Get("minCapacity"); capacityStr != "" {
		capacity, err := strconv.Atoi(capacityStr)
		if err != nil {
			h.logger.Warn("GET /spaces/free - Invalid min capacity: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCapacity)
			return
		}
		req.MinCapacity = &capacity
	}

	result, err := h.service.FindFree(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, spaces.ErrInvalidInterval):
			h.logger.Warn("GET /spaces/free - Invalid interval: location_id=%d", locationID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, spaces.ErrInvalidCapacity):
			h.logger.Warn("GET /spaces/free - Invalid capacity: location_id=%d", locationID)
			handlers.RespondBadRequest(w, msgInvalidCapacity)

		default:
			h.logger.Error("GET /spaces/free - Failed to find free spaces: location_id=%d, error=%v",
				locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spaces/free - Free spaces retrieved: location_id=%d, count=%d",
		locationID, len(result.Spaces))
	handlers.RespondJSON(w, http.StatusOK, result)
}
