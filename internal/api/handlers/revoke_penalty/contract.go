package revoke_penalty

import (
	"context"

	"github.com/m04kA/Coworkly-BookingService/internal/service/penalties/models"
)

type PenaltyService interface {
	Revoke(ctx context.Context, id int64) (*models.PenaltyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
