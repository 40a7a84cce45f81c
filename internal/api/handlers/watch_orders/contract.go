package watch_orders

import (
	"github.com/m04kA/SCM-OrderService/internal/infra/feed"
)

// EventSource источник событий изменений заказов
type EventSource interface {
	Subscribe() (<-chan feed.Event, func())
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
