package create_penalty

import (
	"errors"
	"net/http"

	"github.com/m04kA/Coworkly-BookingService/internal/api/handlers"
	"github.com/m04kA/Coworkly-BookingService/internal/api/middleware"
	"github.com/m04kA/Coworkly-BookingService/internal/service/penalties"
	"github.com/m04kA/Coworkly-BookingService/internal/service/penalties/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPayload     = "некорректные параметры штрафа"
	msgUserNotFound       = "пользователь не найден"
	msgUserBlocked        = "пользователь заблокирован"
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

// Handle POST /api/v1/penalties
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePenaltyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /penalties - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Автор штрафа берется из идентичности администратора
	if adminID, ok := middleware.GetUserID(r.Context()); ok {
		req.CreatedByAdminID = &adminID
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, penalties.ErrInvalidPayload):
			h.logger.Warn("POST /penalties - Invalid payload: user_id=%d, error=%v", req.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidPayload)

		case errors.Is(err, penalties.ErrUserNotFound):
			h.logger.Warn("POST /penalties - User not found: user_id=%d", req.UserID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, penalties.ErrUserBlocked):
			h.logger.Warn("POST /penalties - User blocked: user_id=%d", req.UserID)
			handlers.RespondForbidden(w, msgUserBlocked)

		default:
			h.logger.Error("POST /penalties - Failed to create penalty: user_id=%d, error=%v", req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /penalties - Penalty created: penalty_id=%d, user_id=%d", result.ID, result.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
