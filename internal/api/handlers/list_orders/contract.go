package list_orders

import (
	"context"

	"github.com/m04kA/SCM-OrderService/internal/service/orders/models"
)

type OrdersService interface {
	List(ctx context.Context, req *models.ListOrdersRequest) (*models.OrderListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
