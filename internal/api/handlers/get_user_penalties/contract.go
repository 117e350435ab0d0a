package get_user_penalties

import (
	"context"

	"github.com/m04kA/Coworkly-BookingService/internal/service/penalties/models"
)

type PenaltyService interface {
	ListActiveForUser(ctx context.Context, userID int64) (*models.PenaltyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
