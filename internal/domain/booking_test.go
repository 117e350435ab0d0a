package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_Overlaps(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	booking := Booking{
		StartsAt: base,
		EndsAt:   base.Add(2 * time.Hour), // [10:00, 12:00)
	}

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want bool
	}{
		{
			name: "полное совпадение пересекается",
			from: base,
			to:   base.Add(2 * time.Hour),
			want: true,
		},
		{
			name: "частичное пересечение справа",
			from: base.Add(time.Hour),
			to:   base.Add(3 * time.Hour),
			want: true,
		},
		{
			name: "вложенный интервал пересекается",
			from: base.Add(30 * time.Minute),
			to:   base.Add(time.Hour),
			want: true,
		},
		{
			name: "касание правой границы не пересекается",
			from: base.Add(2 * time.Hour),
			to:   base.Add(3 * time.Hour),
			want: false,
		},
		{
			name: "касание левой границы не пересекается",
			from: base.Add(-time.Hour),
			to:   base,
			want: false,
		},
		{
			name: "интервал до брони не пересекается",
			from: base.Add(-2 * time.Hour),
			to:   base.Add(-time.Hour),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.Overlaps(tt.from, tt.to))
		})
	}
}

func TestBooking_StatusPredicates(t *testing.T) {
	// Слот блокируют только DRAFT, PENDING и CONFIRMED
	assert.True(t, (&Booking{Status: StatusPending}).BlocksSlot())
	assert.True(t, (&Booking{Status: StatusConfirmed}).BlocksSlot())
	assert.True(t, (&Booking{Status: StatusDraft}).BlocksSlot())
	assert.False(t, (&Booking{Status: StatusCanceled}).BlocksSlot())
	assert.False(t, (&Booking{Status: StatusCompleted}).BlocksSlot())
	assert.False(t, (&Booking{Status: StatusNoShow}).BlocksSlot())

	// Подтвердить можно только из PENDING (и DRAFT)
	assert.True(t, (&Booking{Status: StatusPending}).CanBeConfirmed())
	assert.True(t, (&Booking{Status: StatusDraft}).CanBeConfirmed())
	assert.False(t, (&Booking{Status: StatusConfirmed}).CanBeConfirmed())
	assert.False(t, (&Booking{Status: StatusCanceled}).CanBeConfirmed())

	// Терминальные статусы
	assert.True(t, (&Booking{Status: StatusCompleted}).IsTerminal())
	assert.True(t, (&Booking{Status: StatusNoShow}).IsTerminal())
	assert.False(t, (&Booking{Status: StatusPending}).IsTerminal())
}

func TestVisit_CanExtendTo(t *testing.T) {
	plannedEnd := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	visit := Visit{Status: VisitActive, PlannedEnd: plannedEnd}

	assert.True(t, visit.CanExtendTo(plannedEnd.Add(time.Minute)))
	assert.False(t, visit.CanExtendTo(plannedEnd), "продление на то же время не допускается")
	assert.False(t, visit.CanExtendTo(plannedEnd.Add(-time.Minute)), "сокращение не допускается")
}

func TestVisit_IsOverdue(t *testing.T) {
	plannedEnd := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	active := Visit{Status: VisitActive, PlannedEnd: plannedEnd}
	assert.False(t, active.IsOverdue(plannedEnd), "ровно в плановое окончание просрочки ещё нет")
	assert.True(t, active.IsOverdue(plannedEnd.Add(time.Second)))

	completed := Visit{Status: VisitCompleted, PlannedEnd: plannedEnd}
	assert.False(t, completed.IsOverdue(plannedEnd.Add(time.Hour)), "завершённый визит не просрочен")
}
