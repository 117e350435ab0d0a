package check_out

import (
	"context"

	"github.com/m04kA/Coworkly-BookingService/internal/service/visits/models"
)

type VisitService interface {
	CheckOut(ctx context.Context, visitID int64) (*models.VisitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
