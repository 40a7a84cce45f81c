package reschedule_order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SCM-OrderService/internal/api/handlers"
	rescheduleOrder "github.com/m04kA/SCM-OrderService/internal/usecase/reschedule_order"
)

const (
	msgInvalidOrderID     = "некорректный ID заказа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgOrderNotFound      = "заказ не найден"
	msgNotPending         = "переносить можно только отложенный заказ"
	msgUnitBusy           = "техника занята в выбранном временном окне"
	msgInvalidInput       = "некорректные данные переноса"
)

type Handler struct {
	useCase RescheduleOrderUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/orders/{orderId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /orders/{orderId}/reschedule - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req RescheduleOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /orders/{orderId}/reschedule - Invalid request body: order_id=%d, error=%v", orderID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(orderID)
	if err != nil {
		h.logger.Warn("PATCH /orders/{orderId}/reschedule - Failed to parse request: order_id=%d, error=%v", orderID, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleOrder.ErrOrderNotFound):
			h.logger.Warn("PATCH /orders/{orderId}/reschedule - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, rescheduleOrder.ErrNotPending):
			h.logger.Warn("PATCH /orders/{orderId}/reschedule - Order not pending: order_id=%d", orderID)
			handlers.RespondError(w, http.StatusConflict, msgNotPending)

		case errors.Is(err, rescheduleOrder.ErrUnitBusy):
			h.logger.Warn("PATCH /orders/{orderId}/reschedule - Unit busy: order_id=%d, error=%v", orderID, err)
			handlers.RespondError(w, http.StatusConflict, msgUnitBusy)

		case errors.Is(err, rescheduleOrder.ErrInvalidInput):
			h.logger.Warn("PATCH /orders/{orderId}/reschedule - Invalid input: order_id=%d, error=%v", orderID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /orders/{orderId}/reschedule - Failed to reschedule order: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{orderId}/reschedule - Order rescheduled: order_id=%d, reference=%s", orderID, result.Reference)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
