package models

import (
	"time"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
)

// Request модели

// CheckInRequest запрос на check-in по бронированию
type CheckInRequest struct {
	BookingID int64 `json:"bookingId"`
}

// ExtendVisitRequest запрос на продление визита
type ExtendVisitRequest struct {
	NewPlannedEnd time.Time `json:"newPlannedEnd"`
}

// Response модели

// VisitResponse ответ с данными визита
type VisitResponse struct {
	ID         int64      `json:"id"`
	BookingID  int64      `json:"bookingId"`
	UserID     int64      `json:"userId"`
	SpaceID    int64      `json:"spaceId"`
	CheckIn    time.Time  `json:"checkIn"`
	PlannedEnd time.Time  `json:"plannedEnd"`
	CheckOut   *time.Time `json:"checkOut,omitempty"`
	Status     string     `json:"status"`
}

// VisitListResponse ответ со списком визитов
type VisitListResponse struct {
	Visits []VisitResponse `json:"visits"`
}

// SweepResponse результат прохода по просроченным визитам
type SweepResponse struct {
	MarkedOverdue int             `json:"markedOverdue"`
	Visits        []VisitResponse `json:"visits"`
}

// Методы конвертации

// FromDomainVisit конвертирует domain модель в DTO
func FromDomainVisit(v *domain.Visit) *VisitResponse {
	if v == nil {
		return nil
	}

	return &VisitResponse{
		ID:         v.ID,
		BookingID:  v.BookingID,
		UserID:     v.UserID,
		SpaceID:    v.SpaceID,
		CheckIn:    v.CheckIn,
		PlannedEnd: v.PlannedEnd,
		CheckOut:   v.CheckOut,
		Status:     string(v.Status),
	}
}

// FromDomainVisitList конвертирует список domain моделей в DTO
func FromDomainVisitList(visits []*domain.Visit) *VisitListResponse {
	resp := &VisitListResponse{
		Visits: make([]VisitResponse, 0, len(visits)),
	}

	for _, v := range visits {
		if dto := FromDomainVisit(v); dto != nil {
			resp.Visits = append(resp.Visits, *dto)
		}
	}

	return resp
}
