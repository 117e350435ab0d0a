package get_user_penalties

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Coworkly-BookingService/internal/api/handlers"
	"github.com/m04kA/Coworkly-BookingService/internal/api/middleware"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgAccessDenied  = "доступ к чужим штрафам запрещен"
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

// Handle GET /api/v1/users/{userId}/penalties
// Пользователь видит только свои активные штрафы, администратор любые
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/penalties - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if callerID != userID && !middleware.IsAdmin(r.Context()) {
		h.logger.Warn("GET /users/{userId}/penalties - Access denied: caller=%d, user_id=%d", callerID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	result, err := h.service.ListActiveForUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/{userId}/penalties - Failed to list penalties: user_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{userId}/penalties - Active penalties retrieved: user_id=%d, count=%d",
		userID, len(result.Penalties))
	handlers.RespondJSON(w, http.StatusOK, result)
}
