package export_orders

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SCM-OrderService/internal/api/handlers"
	exportOrders "github.com/m04kA/SCM-OrderService/internal/usecase/export_orders"
)

const (
	msgInvalidFilter = "некорректные параметры фильтрации"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	useCase ExportOrdersUseCase
	logger  Logger
}

func NewHandler(useCase ExportOrdersUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/orders/export
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &exportOrders.Request{
		IncludeInactive: query.Get("includeInactive") == "true",
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if unit := query.Get("unit"); unit != "" {
		req.Unit = &unit
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, exportOrders.ErrInvalidInput):
			h.logger.Warn("GET /orders/export - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /orders/export - Failed to export orders: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /orders/export - Exported report %s (%d bytes)", result.Filename, len(result.Content))

	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Content)
}
