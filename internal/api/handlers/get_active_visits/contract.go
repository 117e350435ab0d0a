package get_active_visits

import (
	"context"

	"github.com/m04kA/Coworkly-BookingService/internal/service/visits/models"
)

type VisitService interface {
	ListActive(ctx context.Context) (*models.VisitListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
