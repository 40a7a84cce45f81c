package export_orders

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных фильтрах
	ErrInvalidInput = errors.New("export_orders: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("export_orders: internal error")
)
