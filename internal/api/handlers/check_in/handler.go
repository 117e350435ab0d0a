package check_in

import (
	"errors"
	"net/http"

	"github.com/m04kA/Coworkly-BookingService/internal/api/handlers"
	"github.com/m04kA/Coworkly-BookingService/internal/service/visits"
	"github.com/m04kA/Coworkly-BookingService/internal/service/visits/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgVisitAlreadyActive = "по этому бронированию уже открыт визит"
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

// Handle POST /api/v1/visits/checkin
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CheckInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /visits/checkin - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CheckIn(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, visits.ErrBookingNotFound):
			h.logger.Warn("POST /visits/checkin - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, visits.ErrVisitAlreadyActive):
			h.logger.Warn("POST /visits/checkin - Visit already active: booking_id=%d", req.BookingID)
			handlers.RespondConflict(w, msgVisitAlreadyActive)

		default:
			h.logger.Error("POST /visits/checkin - Failed to check in: booking_id=%d, error=%v",
				req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /visits/checkin - Visit opened: visit_id=%d, booking_id=%d", result.ID, req.BookingID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
