package walkin_booking

import (
	"context"

	walkinBooking "github.com/m04kA/Coworkly-BookingService/internal/usecase/walkin_booking"
)

type WalkInBookingUseCase interface {
	Execute(ctx context.Context, req *walkinBooking.Request) (*walkinBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
