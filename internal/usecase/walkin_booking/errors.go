package walkin_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("walkin_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase.
	// Ошибки допуска (занятость, штрафы) пробрасываются из create_booking
	// без переупаковки.
	ErrInternal = errors.New("walkin_booking: internal error")
)
