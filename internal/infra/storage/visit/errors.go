package visit

import "errors"

var (
	// ErrVisitNotFound возвращается, когда визит не найден
	ErrVisitNotFound = errors.New("visit.repository: visit not found")

	// ErrActiveVisitExists возвращается при попытке открыть второй ACTIVE визит
	// по одной брони (нарушение частичного уникального индекса)
	ErrActiveVisitExists = errors.New("visit.repository: active visit already exists for booking")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("visit.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("visit.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("visit.repository: failed to scan row")
)
