package orders

import "github.com/m04kA/SCM-OrderService/internal/domain"

// allowedTransitions допустимые переходы статусов заказа.
//
// Pending -> Requested намеренно отсутствует: возврат в работу идет только
// через операцию переноса с новым рабочим окном (usecase reschedule_order).
// Canceled - терминальный статус.
var allowedTransitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.StatusRequested: {
		domain.StatusOnProgress,
		domain.StatusPending,
		domain.StatusClosed,
		domain.StatusCanceled,
	},
	domain.StatusOnProgress: {
		domain.StatusPending,
		domain.StatusClosed,
		domain.StatusCanceled,
	},
	domain.StatusPending: {
		domain.StatusCanceled,
	},
	domain.StatusClosed: {
		domain.StatusPending,
		domain.StatusCanceled,
	},
	domain.StatusCanceled: {},
}

// canTransition проверяет, допустим ли переход from -> to
func canTransition(from, to domain.OrderStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
