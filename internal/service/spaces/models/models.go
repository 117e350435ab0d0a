package models

import (
	"time"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
)

// Request модели

// FindFreeRequest параметры поиска свободных пространств
type FindFreeRequest struct {
	LocationID  int64
	From        time.Time
	To          time.Time
	MinCapacity *int // nil означает значение по умолчанию (1)
}

// Response модели

// FreeSpaceResponse свободное пространство в интервале поиска
type FreeSpaceResponse struct {
	SpaceID  int64  `json:"spaceId"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// FreeSpaceListResponse ответ со списком свободных пространств
type FreeSpaceListResponse struct {
	Spaces []FreeSpaceResponse `json:"spaces"`
}

// SpaceResponse ответ с данными пространства
type SpaceResponse struct {
	ID           int64  `json:"id"`
	LocationID   int64  `json:"locationId"`
	LocationName string `json:"locationName"`
	Name         string `json:"name"`
	Capacity     int    `json:"capacity"`
	Type         string `json:"type"`
	TariffPlanID *int64 `json:"tariffPlanId,omitempty"`
}

// SpaceListResponse ответ со списком пространств
type SpaceListResponse struct {
	Spaces []SpaceResponse `json:"spaces"`
}

// Методы конвертации

// FromDomainFreeSpaces конвертирует результат поиска в DTO
func FromDomainFreeSpaces(spaces []*domain.FreeSpace) *FreeSpaceListResponse {
	resp := &FreeSpaceListResponse{
		Spaces: make([]FreeSpaceResponse, 0, len(spaces)),
	}

	for _, s := range spaces {
		if s == nil {
			continue
		}
		resp.Spaces = append(resp.Spaces, FreeSpaceResponse{
			SpaceID:  s.SpaceID,
			Name:     s.Name,
			Capacity: s.Capacity,
		})
	}

	return resp
}

// FromDomainSpaces конвертирует список пространств в DTO
func FromDomainSpaces(spaces []*domain.Space) *SpaceListResponse {
	resp := &SpaceListResponse{
		Spaces: make([]SpaceResponse, 0, len(spaces)),
	}

	for _, s := range spaces {
		if s == nil {
			continue
		}
		resp.Spaces = append(resp.Spaces, SpaceResponse{
			ID:           s.ID,
			LocationID:   s.LocationID,
			LocationName: s.LocationName,
			Name:         s.Name,
			Capacity:     s.Capacity,
			Type:         string(s.Type),
			TariffPlanID: s.TariffPlanID,
		})
	}

	return resp
}
