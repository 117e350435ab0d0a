package models

import (
	"time"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
)

// Caller идентичность вызывающего, прокинутая из auth middleware
type Caller struct {
	UserID  int64
	IsAdmin bool
}

// CanAccessUser проверяет право на просмотр данных пользователя userID
func (c Caller) CanAccessUser(userID int64) bool {
	return c.IsAdmin || c.UserID == userID
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	SpaceID    int64     `json:"spaceId"`
	StartsAt   time.Time `json:"startsAt"`
	EndsAt     time.Time `json:"endsAt"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"totalCents"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BookingWithSpaceResponse бронирование с данными пространства
// для истории пользователя
type BookingWithSpaceResponse struct {
	BookingResponse
	SpaceName    string `json:"spaceName"`
	SpaceType    string `json:"spaceType"`
	LocationID   int64  `json:"locationId"`
	LocationName string `json:"locationName"`
}

// BookingListResponse ответ со списком бронирований пользователя
type BookingListResponse struct {
	Bookings []BookingWithSpaceResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		SpaceID:    b.SpaceID,
		StartsAt:   b.StartsAt,
		EndsAt:     b.EndsAt,
		Status:     string(b.Status),
		TotalCents: b.TotalCents,
		CreatedAt:  b.CreatedAt,
	}
}

// FromDomainBookingWithSpace конвертирует проекцию с пространством в DTO
func FromDomainBookingWithSpace(b *domain.BookingWithSpace) *BookingWithSpaceResponse {
	if b == nil {
		return nil
	}

	return &BookingWithSpaceResponse{
		BookingResponse: *FromDomainBooking(&b.Booking),
		SpaceName:       b.SpaceName,
		SpaceType:       string(b.SpaceType),
		LocationID:      b.LocationID,
		LocationName:    b.LocationName,
	}
}

// FromDomainBookingList конвертирует список проекций в DTO
func FromDomainBookingList(bookings []*domain.BookingWithSpace) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingWithSpaceResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if dto := FromDomainBookingWithSpace(b); dto != nil {
			resp.Bookings = append(resp.Bookings, *dto)
		}
	}

	return resp
}
