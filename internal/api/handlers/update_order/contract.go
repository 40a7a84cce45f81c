package update_order

import (
	"context"

	"github.com/m04kA/SCM-OrderService/internal/service/orders/models"
)

type OrdersService interface {
	Update(ctx context.Context, id int64, req *models.UpdateOrderRequest) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
