package domain

import (
	"time"

	"github.com/m04kA/SCM-OrderService/pkg/types"
)

// UnitType категория тяжелой техники
type UnitType string

const (
	UnitCrane      UnitType = "Crane"
	UnitFocoCrane  UnitType = "Foco Crane"
	UnitPrimemover UnitType = "Primemover"
	UnitPicker     UnitType = "Picker"
	UnitTSO        UnitType = "TSO"
	UnitTangkiAir  UnitType = "Tangki Air"
)

// OrderStatus статус заказа в жизненном цикле
type OrderStatus string

const (
	StatusRequested  OrderStatus = "Requested"
	StatusOnProgress OrderStatus = "On Progress"
	StatusPending    OrderStatus = "Pending"
	StatusClosed     OrderStatus = "Closed"
	StatusCanceled   OrderStatus = "Canceled"
)

// Order заказ на работу единицы техники в рамках одного рабочего окна.
// ID - суррогатный ключ (не меняется за время жизни строки),
// Reference - человекочитаемый номер заявки (REQ-00012), на который
// навешиваются префиксы жизненного цикла PENDING-/CANCELED-.
type Order struct {
	ID          int64
	Reference   string
	Unit        UnitType
	OrdererName string

	// Плановое рабочее окно. Обнуляется при переводе заказа в Pending.
	Date      *time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString

	// Плановая длительность "HH:MM", вычисляется при записи и не пересчитывается при чтении
	DurationPlan string

	// Фактические отметки времени, проставляются при On Progress / Closed
	ActualStartTime *time.Time
	ActualEndTime   *time.Time
	DurationActual  string

	Details string
	Status  OrderStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking возвращает true, если заказ занимает свое рабочее окно
// и должен учитываться при проверке пересечений
func (o *Order) IsBlocking() bool {
	return o.Status == StatusRequested || o.Status == StatusOnProgress
}

// IsTerminal возвращает true для финальных статусов
func (o *Order) IsTerminal() bool {
	return o.Status == StatusClosed || o.Status == StatusCanceled
}

// CanBeEdited возвращает true, если детали заказа можно менять через форму редактирования
func (o *Order) CanBeEdited() bool {
	return !o.IsTerminal()
}

// CanBeCancelled возвращает true, если заказ можно отменить.
// Отмена доступна из любого статуса, кроме самой отмены.
func (o *Order) CanBeCancelled() bool {
	return o.Status != StatusCanceled
}

// HasSchedule возвращает true, если у заказа заполнено рабочее окно
func (o *Order) HasSchedule() bool {
	return o.Date != nil && o.StartTime != nil && o.EndTime != nil &&
		!o.StartTime.IsZero() && !o.EndTime.IsZero()
}

// OrdersFilter фильтр для выборки заказов
type OrdersFilter struct {
	Unit            *UnitType    // Фильтр по типу техники (опционально)
	Date            *time.Time   // Фильтр по дате рабочего окна (опционально)
	Status          *OrderStatus // Фильтр по статусу (опционально)
	IncludeInactive bool         // Включать ли Closed/Canceled заказы
}
