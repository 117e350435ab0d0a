package extend_visit

import (
	"context"

	"github.com/m04kA/Coworkly-BookingService/internal/service/visits/models"
)

type VisitService interface {
	Extend(ctx context.Context, visitID int64, req *models.ExtendVisitRequest) (*models.VisitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
