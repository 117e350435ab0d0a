package create_penalty

import (
	"context"

	"github.com/m04kA/Coworkly-BookingService/internal/service/penalties/models"
)

type PenaltyService interface {
	Create(ctx context.Context, req *models.CreatePenaltyRequest) (*models.PenaltyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
