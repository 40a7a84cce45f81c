package export_orders

import (
	"context"
	"time"

	"github.com/m04kA/SCM-OrderService/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	List(ctx context.Context, filter domain.OrdersFilter) ([]*domain.Order, error)
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
