package export_orders

import (
	"context"

	exportOrders "github.com/m04kA/SCM-OrderService/internal/usecase/export_orders"
)

type ExportOrdersUseCase interface {
	Execute(ctx context.Context, req *exportOrders.Request) (*exportOrders.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
