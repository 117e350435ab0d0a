package get_spaces

import (
	"context"

	"github.com/m04kA/Coworkly-BookingService/internal/service/spaces/models"
)

type SpaceService interface {
	ListActive(ctx context.Context) (*models.SpaceListResponse, error)
	ListActiveByLocation(ctx context.Context, locationID int64) (*models.SpaceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
