package check_in

import (
	"context"

	"github.com/m04kA/Coworkly-BookingService/internal/service/visits/models"
)

type VisitService interface {
	CheckIn(ctx context.Context, req *models.CheckInRequest) (*models.VisitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
