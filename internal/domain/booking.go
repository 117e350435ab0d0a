package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusDraft     BookingStatus = "DRAFT"
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCanceled  BookingStatus = "CANCELED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusNoShow    BookingStatus = "NO_SHOW"
)

// Booking represents a reserved interval on a space for a user
type Booking struct {
	ID         int64
	UserID     int64
	SpaceID    int64
	StartsAt   time.Time
	EndsAt     time.Time // строго позже StartsAt, правая граница не включается
	Status     BookingStatus
	TotalCents int64
	CreatedAt  time.Time
}

// Duration возвращает длительность бронирования
func (b *Booking) Duration() time.Duration {
	return b.EndsAt.Sub(b.StartsAt)
}

// IsTerminal returns true if the booking reached a terminal status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCanceled ||
		b.Status == StatusCompleted ||
		b.Status == StatusNoShow
}

// CanBeConfirmed returns true if the booking can transition to CONFIRMED
// DRAFT приравнивается к PENDING (зарезервирован под многошаговое создание)
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending || b.Status == StatusDraft
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// BlocksSlot returns true if the booking counts against space availability
func (b *Booking) BlocksSlot() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed ||
		b.Status == StatusDraft
}

// Overlaps проверяет пересечение с интервалом [from, to)
// Касание границ пересечением не считается (строгие неравенства)
func (b *Booking) Overlaps(from, to time.Time) bool {
	return b.StartsAt.Before(to) && b.EndsAt.After(from)
}

// BookingWithSpace бронирование с денормализованными данными пространства
// Используется в проекции истории бронирований пользователя
type BookingWithSpace struct {
	Booking
	SpaceName    string
	SpaceType    SpaceType
	LocationID   int64
	LocationName string
}
