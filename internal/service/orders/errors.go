package orders

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("orders: order not found")

	// ErrInvalidStatus возвращается при неизвестном статусе в запросе
	ErrInvalidStatus = errors.New("orders: invalid order status")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("orders: invalid status transition")

	// ErrRescheduleRequired возвращается при попытке вернуть заказ из Pending
	// в Requested без нового рабочего окна - для этого есть отдельная
	// операция переноса
	ErrRescheduleRequired = errors.New("orders: pending order requires a new schedule")

	// ErrCannotCancel возвращается, когда заказ нельзя отменить
	ErrCannotCancel = errors.New("orders: order cannot be cancelled")

	// ErrCannotEdit возвращается при попытке редактировать завершенный заказ
	ErrCannotEdit = errors.New("orders: order cannot be edited")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("orders: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("orders: internal error")
)
