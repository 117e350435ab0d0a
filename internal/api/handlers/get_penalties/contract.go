package get_penalties

import (
	"context"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
	"github.com/m04kA/Coworkly-BookingService/internal/service/penalties/models"
)

type PenaltyService interface {
	List(ctx context.Context, filter domain.PenaltyFilter) (*models.PenaltyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
