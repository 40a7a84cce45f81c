package reschedule_order

import (
	"time"

	"github.com/m04kA/SCM-OrderService/internal/domain"
	rescheduleOrder "github.com/m04kA/SCM-OrderService/internal/usecase/reschedule_order"
	"github.com/m04kA/SCM-OrderService/pkg/types"
)

// RescheduleOrderRequest HTTP request model переноса заказа
type RescheduleOrderRequest struct {
	Date      string `json:"date"`      // "2025-06-10"
	StartTime string `json:"startTime"` // "08:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

// OrderResponse HTTP response model перенесенного заказа
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
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleOrderRequest) ToUseCaseRequest(orderID int64) (*rescheduleOrder.Request, error) {
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

	return &rescheduleOrder.Request{
		OrderID:   orderID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleOrder.Response) *OrderResponse {
	return &OrderResponse{
		ID:           resp.ID,
		Reference:    resp.Reference,
		Unit:         resp.Unit,
		OrdererName:  resp.OrdererName,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		DurationPlan: resp.DurationPlan,
		Details:      resp.Details,
		Status:       resp.Status,
	}
}
