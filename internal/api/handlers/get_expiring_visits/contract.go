package get_expiring_visits

import (
	"context"

	"github.com/m04kA/Coworkly-BookingService/internal/service/visits/models"
)

type VisitService interface {
	ListExpiring(ctx context.Context, withinMinutes int) (*models.VisitListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
