package bookings

import (
	"context"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserIDWithSpace(ctx context.Context, userID int64) ([]*domain.BookingWithSpace, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.BookingStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
