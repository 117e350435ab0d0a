package penalties

import (
	"context"
	"time"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
	"github.com/m04kA/Coworkly-BookingService/internal/integrations/userservice"
)

// PenaltyRepository интерфейс репозитория штрафов
type PenaltyRepository interface {
	Create(ctx context.Context, penalty *domain.Penalty) (*domain.Penalty, error)
	GetByID(ctx context.Context, id int64) (*domain.Penalty, error)
	GetActiveByUserID(ctx context.Context, userID int64, now time.Time) ([]*domain.Penalty, error)
	GetByFilter(ctx context.Context, filter domain.PenaltyFilter, now time.Time) ([]*domain.Penalty, error)
	Revoke(ctx context.Context, id int64, revokedAt time.Time) (*domain.Penalty, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
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
