package visits

import (
	"context"
	"time"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
)

// VisitRepository интерфейс репозитория визитов
type VisitRepository interface {
	Create(ctx context.Context, visit *domain.Visit) (*domain.Visit, error)
	GetByID(ctx context.Context, id int64) (*domain.Visit, error)
	GetActiveByBookingID(ctx context.Context, bookingID int64) (*domain.Visit, error)
	ListActive(ctx context.Context) ([]*domain.Visit, error)
	ListExpiring(ctx context.Context, from, to time.Time) ([]*domain.Visit, error)
	Complete(ctx context.Context, id int64, checkOut time.Time) error
	UpdatePlannedEnd(ctx context.Context, id int64, plannedEnd time.Time) error
	MarkOverdue(ctx context.Context, now time.Time) ([]*domain.Visit, error)
}

// BookingRepository интерфейс репозитория бронирований (нужен для check-in)
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
