package walkin_booking

import (
	"context"

	"github.com/m04kA/Coworkly-BookingService/internal/integrations/userservice"
	"github.com/m04kA/Coworkly-BookingService/internal/usecase/create_booking"
)

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	FindByEmail(ctx context.Context, email string) (*userservice.User, error)
	Register(ctx context.Context, request *userservice.RegisterRequest) (*userservice.User, error)
}

// BookingCreator интерфейс use case создания бронирования
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
