package update_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SCM-OrderService/internal/api/handlers"
	"github.com/m04kA/SCM-OrderService/internal/service/orders"
	"github.com/m04kA/SCM-OrderService/internal/service/orders/models"
)

const (
	msgInvalidOrderID     = "некорректный ID заказа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgOrderNotFound      = "заказ не найден"
	msgInvalidStatus      = "неизвестный статус заказа"
	msgInvalidTransition  = "недопустимый переход статуса"
	msgRescheduleRequired = "отложенный заказ возвращается в работу только через перенос с новым временем"
	msgCannotCancel       = "заказ нельзя отменить"
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

// Handle PATCH /api/v1/orders/{orderId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /orders/{orderId}/status - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /orders/{orderId}/status - Invalid request body: order_id=%d, error=%v", orderID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), orderID, &models.UpdateStatusRequest{Status: req.Status})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("PATCH /orders/{orderId}/status - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, orders.ErrInvalidStatus):
			h.logger.Warn("PATCH /orders/{orderId}/status - Invalid status: order_id=%d, status=%s", orderID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, orders.ErrRescheduleRequired):
			h.logger.Warn("PATCH /orders/{orderId}/status - Reschedule required: order_id=%d", orderID)
			handlers.RespondError(w, http.StatusConflict, msgRescheduleRequired)

		case errors.Is(err, orders.ErrInvalidTransition):
			h.logger.Warn("PATCH /orders/{orderId}/status - Invalid transition: order_id=%d, status=%s", orderID, req.Status)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, orders.ErrCannotCancel):
			h.logger.Warn("PATCH /orders/{orderId}/status - Cannot cancel: order_id=%d", orderID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("PATCH /orders/{orderId}/status - Failed to update status: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{orderId}/status - Status updated: order_id=%d, status=%s", orderID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
