package models

import (
	"errors"
	"time"

	"github.com/m04kA/SCM-OrderService/internal/domain"
	"github.com/m04kA/SCM-OrderService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrInvalidUnit возвращается при некорректном типе техники
	ErrInvalidUnit = errors.New("invalid unit type")
)

// Request модели

// UpdateOrderRequest запрос на редактирование заказа (форма Edit)
type UpdateOrderRequest struct {
	Unit        domain.UnitType
	OrdererName string
	Date        *time.Time
	StartTime   *types.TimeString
	EndTime     *types.TimeString
	Details     string
}

// UpdateStatusRequest запрос на смену статуса заказа
type UpdateStatusRequest struct {
	Status string
}

// ListOrdersRequest запрос на получение списка заказов
type ListOrdersRequest struct {
	Unit            *string
	Date            *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListOrdersRequest) ToDomainFilter() (domain.OrdersFilter, error) {
	filter := domain.OrdersFilter{
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Unit != nil {
		unit, err := ToDomainUnit(*r.Unit)
		if err != nil {
			return filter, err
		}
		filter.Unit = &unit
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// OrderResponse ответ с данными заказа
type OrderResponse struct {
	ID           int64   `json:"id"`
	Reference    string  `json:"reference"`
	Unit         string  `json:"unit"`
	OrdererName  string  `json:"ordererName"`
	Date         *string `json:"date,omitempty"`      // "2025-06-01"
	StartTime    *string `json:"startTime,omitempty"` // "08:00"
	EndTime      *string `json:"endTime,omitempty"`
	DurationPlan string  `json:"durationPlan,omitempty"`

	ActualStartTime *string `json:"actualStartTime,omitempty"` // ISO 8601
	ActualEndTime   *string `json:"actualEndTime,omitempty"`
	DurationActual  string  `json:"durationActual,omitempty"`

	Details string `json:"details"`
	Status  string `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderListResponse ответ со списком заказов и сводкой по статусам
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Counts map[string]int  `json:"counts"`
}

// Методы конвертации

// FromDomainOrder конвертирует domain модель в DTO
func FromDomainOrder(o *domain.Order) *OrderResponse {
	if o == nil {
		return nil
	}

	resp := &OrderResponse{
		ID:             o.ID,
		Reference:      o.Reference,
		Unit:           string(o.Unit),
		OrdererName:    o.OrdererName,
		DurationPlan:   o.DurationPlan,
		DurationActual: o.DurationActual,
		Details:        o.Details,
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}

	if o.Date != nil {
		dateStr := o.Date.Format(domain.DateFormat)
		resp.Date = &dateStr
	}
	if o.StartTime != nil {
		startStr := o.StartTime.String()
		resp.StartTime = &startStr
	}
	if o.EndTime != nil {
		endStr := o.EndTime.String()
		resp.EndTime = &endStr
	}
	if o.ActualStartTime != nil {
		actualStart := o.ActualStartTime.Format(time.RFC3339)
		resp.ActualStartTime = &actualStart
	}
	if o.ActualEndTime != nil {
		actualEnd := o.ActualEndTime.Format(time.RFC3339)
		resp.ActualEndTime = &actualEnd
	}

	return resp
}

// FromDomainOrderList конвертирует список domain моделей в DTO
func FromDomainOrderList(orders []*domain.Order, counts map[domain.OrderStatus]int) *OrderListResponse {
	resp := &OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
		Counts: make(map[string]int, len(counts)),
	}

	for _, order := range orders {
		if orderResp := FromDomainOrder(order); orderResp != nil {
			resp.Orders = append(resp.Orders, *orderResp)
		}
	}

	for status, count := range counts {
		resp.Counts[string(status)] = count
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.OrderStatus с валидацией
func ToDomainStatus(status string) (domain.OrderStatus, error) {
	s := domain.OrderStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainUnit конвертирует строку в domain.UnitType с валидацией
func ToDomainUnit(unit string) (domain.UnitType, error) {
	u := domain.UnitType(unit)
	if !domain.IsValidUnit(u) {
		return "", ErrInvalidUnit
	}
	return u, nil
}
