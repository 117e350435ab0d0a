package find_free_spaces

import (
	"context"

	"github.com/m04kA/Coworkly-BookingService/internal/service/spaces/models"
)

type SpaceService interface {
	FindFree(ctx context.Context, req *models.FindFreeRequest) (*models.FreeSpaceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
