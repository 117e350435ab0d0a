package domain

// Default values
const (
	DefaultMinCapacity        = 1
	DefaultExpiringWindowMin  = 15
	MinPenaltyLimitMinutes    = 1
	MaxReasonLength           = 500
	TempPasswordLength        = 12
)

// SlotBlockingStatuses статусы, при которых бронирование занимает слот.
// Используется оракулом доступности и проверкой пересечений при создании.
var SlotBlockingStatuses = []BookingStatus{
	StatusDraft,
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses список терминальных статусов бронирования
var TerminalStatuses = []BookingStatus{
	StatusCanceled,
	StatusCompleted,
	StatusNoShow,
}
