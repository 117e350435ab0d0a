package create_booking

import (
	"fmt"
	"time"

	createBooking "github.com/m04kA/Coworkly-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SpaceID  int64  `json:"spaceId"`
	StartsAt string `json:"startsAt"` // RFC3339
	EndsAt   string `json:"endsAt"`   // RFC3339
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	SpaceID    int64  `json:"spaceId"`
	StartsAt   string `json:"startsAt"`
	EndsAt     string `json:"endsAt"`
	Status     string `json:"status"`
	TotalCents int64  `json:"totalCents"`
	CreatedAt  string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	startsAt, err := time.Parse(time.RFC3339, r.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("parse startsAt: %w", err)
	}

	endsAt, err := time.Parse(time.RFC3339, r.EndsAt)
	if err != nil {
		return nil, fmt.Errorf("parse endsAt: %w", err)
	}

	return &createBooking.Request{
		UserID:   userID,
		SpaceID:  r.SpaceID,
		StartsAt: startsAt,
		EndsAt:   endsAt,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		UserID:     resp.UserID,
		SpaceID:    resp.SpaceID,
		StartsAt:   resp.StartsAt.Format(time.RFC3339),
		EndsAt:     resp.EndsAt.Format(time.RFC3339),
		Status:     resp.Status,
		TotalCents: resp.TotalCents,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
	}
}
