package orders

import (
	"context"
	"time"

	"github.com/m04kA/SCM-OrderService/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrdersFilter) ([]*domain.Order, error)
	CountByStatus(ctx context.Context) (map[domain.OrderStatus]int, error)
	Update(ctx context.Context, order *domain.Order) error
	Hold(ctx context.Context, id int64, reference string) error
	Cancel(ctx context.Context, id int64, reference string) error
	Start(ctx context.Context, id int64, at time.Time) error
	Close(ctx context.Context, id int64, at time.Time, durationActual string) error
}

// Notifier интерфейс диспетчера уведомлений (best-effort, не блокирует)
type Notifier interface {
	OrderChanged(order *domain.Order)
	OrderCanceled(order *domain.Order)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
