package penalties

import "errors"

var (
	// ErrPenaltyNotFound возвращается, когда штраф не найден
	ErrPenaltyNotFound = errors.New("penalty not found")

	// ErrInvalidPayload возвращается при некорректных параметрах штрафа
	// (отсутствует обязательное для выбранного типа поле)
	ErrInvalidPayload = errors.New("invalid penalty payload")

	// ErrUserNotFound возвращается, когда целевой пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrUserBlocked возвращается, когда целевой пользователь заблокирован
	ErrUserBlocked = errors.New("user is blocked")

	// ErrUserTimedOut возвращается, когда у пользователя действует тайм-аут
	ErrUserTimedOut = errors.New("user is timed out")

	// ErrDurationExceeded возвращается, когда запрошенная длительность брони
	// превышает действующее ограничение
	ErrDurationExceeded = errors.New("booking duration exceeds active limit")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("penalties service: internal error")
)
