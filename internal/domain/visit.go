package domain

import "time"

// VisitStatus represents the status of a visit
type VisitStatus string

const (
	VisitActive    VisitStatus = "ACTIVE"
	VisitCompleted VisitStatus = "COMPLETED"
	VisitOverdue   VisitStatus = "OVERDUE"
)

// Visit represents the physical occupancy record derived from one booking.
// Ссылается на бронирование по ID, статус бронирования не изменяет.
type Visit struct {
	ID         int64
	BookingID  int64
	UserID     int64
	SpaceID    int64
	CheckIn    time.Time
	PlannedEnd time.Time // инициализируется из booking.EndsAt, дальше живёт своей жизнью
	CheckOut   *time.Time
	Status     VisitStatus
}

// IsActive returns true if the visit is still open
func (v *Visit) IsActive() bool {
	return v.Status == VisitActive
}

// IsOverdue проверяет, истекло ли плановое время визита к моменту now
func (v *Visit) IsOverdue(now time.Time) bool {
	return v.Status == VisitActive && v.PlannedEnd.Before(now)
}

// CanExtendTo проверяет, что новое плановое окончание строго позже текущего
func (v *Visit) CanExtendTo(newPlannedEnd time.Time) bool {
	return newPlannedEnd.After(v.PlannedEnd)
}
