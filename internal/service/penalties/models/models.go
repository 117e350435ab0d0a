package models

import (
	"errors"
	"time"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
)

var (
	// ErrInvalidType возвращается при некорректном типе штрафа
	ErrInvalidType = errors.New("invalid penalty type")
)

// Request модели

// CreatePenaltyRequest запрос на создание штрафа
type CreatePenaltyRequest struct {
	UserID           int64      `json:"userId"`
	Type             string     `json:"type"` // TIMEOUT | MAX_DURATION_LIMIT
	Reason           *string    `json:"reason,omitempty"`
	LimitMinutes     *int       `json:"limitMinutes,omitempty"`
	AmountCents      *int64     `json:"amountCents,omitempty"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
	CreatedByAdminID *int64     `json:"-"`
}

// Response модели

// PenaltyResponse ответ с данными штрафа.
// Active вычисляется на момент формирования ответа, в БД не хранится.
type PenaltyResponse struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"userId"`
	Type             string     `json:"type"`
	Reason           *string    `json:"reason,omitempty"`
	LimitMinutes     *int       `json:"limitMinutes,omitempty"`
	AmountCents      *int64     `json:"amountCents,omitempty"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	RevokedAt        *time.Time `json:"revokedAt,omitempty"`
	CreatedByAdminID *int64     `json:"createdByAdminId,omitempty"`
	Active           bool       `json:"active"`
}

// PenaltyListResponse ответ со списком штрафов
type PenaltyListResponse struct {
	Penalties []PenaltyResponse `json:"penalties"`
}

// Методы конвертации

// ToDomainPenaltyType конвертирует строку в domain.PenaltyType с валидацией
func ToDomainPenaltyType(t string) (domain.PenaltyType, error) {
	switch domain.PenaltyType(t) {
	case domain.PenaltyTimeout:
		return domain.PenaltyTimeout, nil
	case domain.PenaltyMaxDurationLimit:
		return domain.PenaltyMaxDurationLimit, nil
	default:
		return "", ErrInvalidType
	}
}

// FromDomainPenalty конвертирует domain модель в DTO, вычисляя активность
// на момент now
func FromDomainPenalty(p *domain.Penalty, now time.Time) *PenaltyResponse {
	if p == nil {
		return nil
	}

	return &PenaltyResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		Type:             string(p.Type),
		Reason:           p.Reason,
		LimitMinutes:     p.LimitMinutes,
		AmountCents:      p.AmountCents,
		ExpiresAt:        p.ExpiresAt,
		CreatedAt:        p.CreatedAt,
		RevokedAt:        p.RevokedAt,
		CreatedByAdminID: p.CreatedByAdminID,
		Active:           p.IsActive(now),
	}
}

// FromDomainPenaltyList конвертирует список domain моделей в DTO
func FromDomainPenaltyList(penalties []*domain.Penalty, now time.Time) *PenaltyListResponse {
	resp := &PenaltyListResponse{
		Penalties: make([]PenaltyResponse, 0, len(penalties)),
	}

	for _, p := range penalties {
		if dto := FromDomainPenalty(p, now); dto != nil {
			resp.Penalties = append(resp.Penalties, *dto)
		}
	}

	return resp
}
