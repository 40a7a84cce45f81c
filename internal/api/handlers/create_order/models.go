package create_order

import (
	"time"

	"github.com/m04kA/SCM-OrderService/internal/domain"
	createOrder "github.com/m04kA/SCM-OrderService/internal/usecase/create_order"
	"github.com/m04kA/SCM-OrderService/pkg/types"
)

// CreateOrderRequest HTTP request model
type CreateOrderRequest struct {
	OrdererName string   `json:"ordererName"`
	Units       []string `json:"units"`
	Date        string   `json:"date"`      // "2025-06-01"
	StartTime   string   `json:"startTime"` // "08:00"
	EndTime     string   `json:"endTime"`   // "12:00"
	Details     string   `json:"details"`
}

// OrderResponse HTTP response model одного созданного заказа
type OrderResponse struct {
	ID           int64  `json:"id"`
	Reference    string `json:"reference"`
	Unit         string `json:"unit"`
	OrdererName  string `json:"ordererName"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	DurationPlan string `json:"durationPlan"`
	Details      string `json:"details"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// CreateOrdersResponse HTTP response model со списком созданных заказов
type CreateOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateOrderRequest) ToUseCaseRequest() (*createOrder.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createOrder.Request{
		OrdererName: r.OrdererName,
		Units:       r.Units,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		Details:     r.Details,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createOrder.Response) *CreateOrdersResponse {
	out := &CreateOrdersResponse{Orders: make([]OrderResponse, 0, len(resp.Orders))}

	for _, o := range resp.Orders {
		out.Orders = append(out.Orders, OrderResponse{
			ID:           o.ID,
			Reference:    o.Reference,
			Unit:         o.Unit,
			OrdererName:  o.OrdererName,
			Date:         o.Date.Format(domain.DateFormat),
			StartTime:    o.StartTime.String(),
			EndTime:      o.EndTime.String(),
			DurationPlan: o.DurationPlan,
			Details:      o.Details,
			Status:       o.Status,
			CreatedAt:    o.CreatedAt.Format(time.RFC3339),
			UpdatedAt:    o.UpdatedAt.Format(time.RFC3339),
		})
	}

	return out
}
