package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/Coworkly-BookingService/internal/api/handlers"
	"github.com/m04kA/Coworkly-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/Coworkly-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimestamps  = "некорректный формат времени, ожидается RFC3339"
	msgInvalidInterval    = "конец интервала должен быть позже начала"
	msgUserNotFound       = "пользователь не найден"
	msgUserBlocked        = "пользователь заблокирован"
	msgUserTimedOut       = "на пользователя наложен тайм-аут"
	msgDurationExceeded   = "длительность брони превышает действующее ограничение"
	msgSlotNotAvailable   = "пространство занято в выбранном интервале"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamps)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput),
			errors.Is(err, createBooking.ErrInvalidInterval):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrUserBlocked):
			h.logger.Warn("POST /bookings - User blocked: user_id=%d", userID)
			handlers.RespondForbidden(w, msgUserBlocked)

		case errors.Is(err, createBooking.ErrUserTimedOut):
			h.logger.Warn("POST /bookings - User timed out: user_id=%d", userID)
			handlers.RespondConflict(w, msgUserTimedOut)

		case errors.Is(err, createBooking.ErrDurationExceeded):
			h.logger.Warn("POST /bookings - Duration limit exceeded: user_id=%d", userID)
			handlers.RespondConflict(w, msgDurationExceeded)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, space_id=%d", userID, req.SpaceID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, space_id=%d, error=%v",
				userID, req.SpaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, space_id=%d",
		result.ID, userID, req.SpaceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
