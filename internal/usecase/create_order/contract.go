package create_order

import (
	"context"

	"github.com/m04kA/SCM-OrderService/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	NextReferenceNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrdersFilter) ([]*domain.Order, error)
}

// Notifier интерфейс диспетчера уведомлений (best-effort, не блокирует)
type Notifier interface {
	OrderCreated(order *domain.Order)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
