package update_order

import (
	"time"

	"github.com/m04kA/SCM-OrderService/internal/domain"
	"github.com/m04kA/SCM-OrderService/internal/service/orders/models"
	"github.com/m04kA/SCM-OrderService/pkg/types"
)

// UpdateOrderRequest HTTP request model формы редактирования.
// Дата и время опциональны: у заказа в Pending рабочего окна нет.
type UpdateOrderRequest struct {
	Unit        string  `json:"unit"`
	OrdererName string  `json:"ordererName"`
	Date        *string `json:"date,omitempty"`      // "2025-06-01"
	StartTime   *string `json:"startTime,omitempty"` // "08:00"
	EndTime     *string `json:"endTime,omitempty"`
	Details     string  `json:"details"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateOrderRequest) ToServiceRequest() (*models.UpdateOrderRequest, error) {
	req := &models.UpdateOrderRequest{
		Unit:        domain.UnitType(r.Unit),
		OrdererName: r.OrdererName,
		Details:     r.Details,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	if r.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &endTime
	}

	return req, nil
}
