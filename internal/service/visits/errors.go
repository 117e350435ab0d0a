package visits

import "errors"

var (
	// ErrVisitNotFound возвращается, когда визит не найден
	ErrVisitNotFound = errors.New("visit not found")

	// ErrBookingNotFound возвращается, когда бронирование для check-in не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrVisitAlreadyActive возвращается при попытке повторного check-in
	// по брони с незавершённым визитом
	ErrVisitAlreadyActive = errors.New("active visit already exists for booking")

	// ErrVisitNotActive возвращается при операции над завершённым визитом
	ErrVisitNotActive = errors.New("visit is not active")

	// ErrInvalidExtension возвращается, когда новое плановое окончание
	// не позже текущего
	ErrInvalidExtension = errors.New("new planned end must be after current planned end")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("visits service: internal error")
)
