package create_order

import "errors"

var (
	// ErrUnitBusy возвращается, когда у техники уже есть активный заказ,
	// пересекающийся с запрошенным рабочим окном
	ErrUnitBusy = errors.New("create_order: unit is busy in the requested window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_order: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_order: internal error")
)
