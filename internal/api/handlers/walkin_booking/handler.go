package walkin_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/Coworkly-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/Coworkly-BookingService/internal/usecase/create_booking"
	walkinBooking "github.com/m04kA/Coworkly-BookingService/internal/usecase/walkin_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimestamps  = "некорректный формат времени, ожидается RFC3339"
	msgInvalidInput       = "некорректные данные walk-in бронирования"
	msgUserBlocked        = "пользователь заблокирован"
	msgUserTimedOut       = "на пользователя наложен тайм-аут"
	msgDurationExceeded   = "длительность брони превышает действующее ограничение"
	msgSlotNotAvailable   = "пространство занято в выбранном интервале"
)

type Handler struct {
	useCase WalkInBookingUseCase
	logger  Logger
}

func NewHandler(useCase WalkInBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/walkin
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req WalkInBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /walkin - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /walkin - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamps)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, walkinBooking.ErrInvalidInput),
			errors.Is(err, createBooking.ErrInvalidInput),
			errors.Is(err, createBooking.ErrInvalidInterval):
			h.logger.Warn("POST /walkin - Invalid input: space_id=%d, error=%v", req.SpaceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrUserBlocked):
			h.logger.Warn("POST /walkin - User blocked: email=%s", req.Email)
			handlers.RespondForbidden(w, msgUserBlocked)

		case errors.Is(err, createBooking.ErrUserTimedOut):
			h.logger.Warn("POST /walkin - User timed out: email=%s", req.Email)
			handlers.RespondConflict(w, msgUserTimedOut)

		case errors.Is(err, createBooking.ErrDurationExceeded):
			h.logger.Warn("POST /walkin - Duration limit exceeded: email=%s", req.Email)
			handlers.RespondConflict(w, msgDurationExceeded)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /walkin - Slot not available: space_id=%d", req.SpaceID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /walkin - Failed to create walk-in booking: space_id=%d, error=%v",
				req.SpaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /walkin - Walk-in booking created: booking_id=%d, user_id=%d, existing=%t",
		result.BookingID, result.UserID, result.ExistingUser)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
