package reschedule_order

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("reschedule_order: order not found")

	// ErrNotPending возвращается при попытке перенести заказ не из статуса Pending
	ErrNotPending = errors.New("reschedule_order: order is not pending")

	// ErrUnitBusy возвращается, когда новое рабочее окно пересекается
	// с активным заказом той же техники
	ErrUnitBusy = errors.New("reschedule_order: unit is busy in the requested window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_order: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_order: internal error")
)
