package walkin_booking

import (
	"fmt"
	"time"

	walkinBooking "github.com/m04kA/Coworkly-BookingService/internal/usecase/walkin_booking"
)

// WalkInBookingRequest HTTP request model
type WalkInBookingRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	SpaceID  int64  `json:"spaceId"`
	StartsAt string `json:"startsAt"` // RFC3339
	EndsAt   string `json:"endsAt"`   // RFC3339
}

// WalkInBookingResponse HTTP response model
type WalkInBookingResponse struct {
	UserID       int64   `json:"userId"`
	BookingID    int64   `json:"bookingId"`
	StartsAt     string  `json:"startsAt"`
	EndsAt       string  `json:"endsAt"`
	Status       string  `json:"status"`
	ExistingUser bool    `json:"existingUser"`
	TempPassword *string `json:"tempPassword,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *WalkInBookingRequest) ToUseCaseRequest() (*walkinBooking.Request, error) {
	startsAt, err := time.Parse(time.RFC3339, r.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("parse startsAt: %w", err)
	}

	endsAt, err := time.Parse(time.RFC3339, r.EndsAt)
	if err != nil {
		return nil, fmt.Errorf("parse endsAt: %w", err)
	}

	return &walkinBooking.Request{
		Email:    r.Email,
		FullName: r.FullName,
		SpaceID:  r.SpaceID,
		StartsAt: startsAt,
		EndsAt:   endsAt,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *walkinBooking.Response) *WalkInBookingResponse {
	return &WalkInBookingResponse{
		UserID:       resp.UserID,
		BookingID:    resp.BookingID,
		StartsAt:     resp.StartsAt.Format(time.RFC3339),
		EndsAt:       resp.EndsAt.Format(time.RFC3339),
		Status:       resp.Status,
		ExistingUser: resp.ExistingUser,
		TempPassword: resp.TempPassword,
	}
}
