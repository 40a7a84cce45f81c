package reschedule_order

import (
	"context"
	"time"

	"github.com/m04kA/SCM-OrderService/internal/domain"
	"github.com/m04kA/SCM-OrderService/pkg/types"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	NextReferenceNumber(ctx context.Context) (int64, error)
	List(ctx context.Context, filter domain.OrdersFilter) ([]*domain.Order, error)
	Reschedule(ctx context.Context, id int64, reference string, date time.Time, startTime, endTime types.TimeString, durationPlan string) error
}

// Notifier интерфейс диспетчера уведомлений (best-effort, не блокирует)
type Notifier interface {
	OrderChanged(order *domain.Order)
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
