package create_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SCM-OrderService/internal/api/handlers"
	createOrder "github.com/m04kA/SCM-OrderService/internal/usecase/create_order"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgUnitBusy           = "техника занята в выбранном временном окне"
	msgInvalidInput       = "некорректные данные заказа"
)

type Handler struct {
	useCase CreateOrderUseCase
	logger  Logger
}

func NewHandler(useCase CreateOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /orders - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createOrder.ErrUnitBusy):
			h.logger.Warn("POST /orders - Unit busy: orderer=%s, units=%v, error=%v",
				req.OrdererName, req.Units, err)
			handlers.RespondError(w, http.StatusConflict, msgUnitBusy)

		case errors.Is(err, createOrder.ErrInvalidInput):
			h.logger.Warn("POST /orders - Invalid input: orderer=%s, error=%v", req.OrdererName, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /orders - Failed to create orders: orderer=%s, error=%v",
				req.OrdererName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders - Created %d orders for orderer=%s", len(result.Orders), req.OrdererName)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
