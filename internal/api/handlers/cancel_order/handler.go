package cancel_order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SCM-OrderService/internal/api/handlers"
	"github.com/m04kA/SCM-OrderService/internal/service/orders"
)

const (
	msgInvalidOrderID = "некорректный ID заказа"
	msgOrderNotFound  = "заказ не найден"
	msgCannotCancel   = "заказ нельзя отменить"
)

type Handler struct {
	service OrdersService
	logger  Logger
}

func NewHandler(service OrdersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/orders/{orderId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /orders/{orderId}/cancel - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	result, err := h.service.Cancel(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("PATCH /orders/{orderId}/cancel - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, orders.ErrCannotCancel):
			h.logger.Warn("PATCH /orders/{orderId}/cancel - Cannot cancel: order_id=%d", orderID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("PATCH /orders/{orderId}/cancel - Failed to cancel order: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{orderId}/cancel - Order cancelled: order_id=%d, reference=%s", orderID, result.Reference)
	handlers.RespondJSON(w, http.StatusOK, result)
}
