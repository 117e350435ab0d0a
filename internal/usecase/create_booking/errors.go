package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidInterval возвращается, когда конец интервала не позже начала
	ErrInvalidInterval = errors.New("create_booking: interval end must be after start")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrUserBlocked возвращается, когда пользователь заблокирован
	ErrUserBlocked = errors.New("create_booking: user is blocked")

	// ErrUserTimedOut возвращается, когда у пользователя действует тайм-аут
	ErrUserTimedOut = errors.New("create_booking: user is timed out")

	// ErrDurationExceeded возвращается, когда длительность брони превышает
	// действующее ограничение пользователя
	ErrDurationExceeded = errors.New("create_booking: booking duration exceeds active limit")

	// ErrSlotNotAvailable возвращается, когда пространство занято
	// в запрошенном интервале
	ErrSlotNotAvailable = errors.New("create_booking: space is not available in this interval")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
