package update_order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SCM-OrderService/internal/api/handlers"
	"github.com/m04kA/SCM-OrderService/internal/service/orders"
)

const (
	msgInvalidOrderID     = "некорректный ID заказа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgOrderNotFound      = "заказ не найден"
	msgCannotEdit         = "завершенный заказ нельзя редактировать"
	msgInvalidInput       = "некорректные данные заказа"
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

// Handle PUT /api/v1/orders/{orderId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /orders/{orderId} - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req UpdateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /orders/{orderId} - Invalid request body: order_id=%d, error=%v", orderID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PUT /orders/{orderId} - Failed to parse request: order_id=%d, error=%v", orderID, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.service.Update(r.Context(), orderID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("PUT /orders/{orderId} - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, orders.ErrCannotEdit):
			h.logger.Warn("PUT /orders/{orderId} - Order cannot be edited: order_id=%d", orderID)
			handlers.RespondError(w, http.StatusConflict, msgCannotEdit)

		case errors.Is(err, orders.ErrInvalidInput):
			h.logger.Warn("PUT /orders/{orderId} - Invalid input: order_id=%d, error=%v", orderID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /orders/{orderId} - Failed to update order: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /orders/{orderId} - Order updated successfully: order_id=%d", orderID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
