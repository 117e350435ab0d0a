package spaces

import (
	"context"
	"time"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
)

// SpaceRepository интерфейс репозитория пространств (оракул доступности)
type SpaceRepository interface {
	FindFree(ctx context.Context, locationID int64, from, to time.Time, minCapacity int) ([]*domain.FreeSpace, error)
	ListActive(ctx context.Context) ([]*domain.Space, error)
	ListActiveByLocation(ctx context.Context, locationID int64) ([]*domain.Space, error)
}

// FreeSpacesCache интерфейс кеша результатов поиска свободных пространств
type FreeSpacesCache interface {
	Get(ctx context.Context, locationID int64, from, to time.Time, minCapacity int) ([]*domain.FreeSpace, error)
	Set(ctx context.Context, locationID int64, from, to time.Time, minCapacity int, spaces []*domain.FreeSpace) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
