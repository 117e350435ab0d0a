package spaces

import "errors"

var (
	// ErrInvalidInterval возвращается, когда конец интервала не позже начала
	ErrInvalidInterval = errors.New("interval end must be after start")

	// ErrInvalidCapacity возвращается при запрошенной вместимости < 1
	ErrInvalidCapacity = errors.New("minimum capacity must be >= 1")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("spaces service: internal error")
)
