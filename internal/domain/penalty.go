package domain

import "time"

// PenaltyType represents the kind of behavioral restriction
type PenaltyType string

const (
	PenaltyTimeout          PenaltyType = "TIMEOUT"
	PenaltyMaxDurationLimit PenaltyType = "MAX_DURATION_LIMIT"
)

// Penalty represents a behavioral restriction attached to a user
type Penalty struct {
	ID               int64
	UserID           int64
	Type             PenaltyType
	Reason           *string
	LimitMinutes     *int   // обязателен для MAX_DURATION_LIMIT, >= 1
	AmountCents      *int64 // опциональный денежный штраф, не интерпретируется ядром
	ExpiresAt        *time.Time
	CreatedAt        time.Time
	RevokedAt        *time.Time
	CreatedByAdminID *int64
}

// IsActive вычисляет активность штрафа на момент now.
// Флаг не хранится: штраф активен, пока не отозван и не истёк.
func (p *Penalty) IsActive(now time.Time) bool {
	if p.RevokedAt != nil {
		return false
	}
	return p.ExpiresAt == nil || p.ExpiresAt.After(now)
}

// IsRevoked returns true if the penalty was explicitly revoked
func (p *Penalty) IsRevoked() bool {
	return p.RevokedAt != nil
}

// PenaltyFilter фильтр для админского списка штрафов
type PenaltyFilter struct {
	UserID     *int64 // nil - по всем пользователям
	ActiveOnly bool
}
