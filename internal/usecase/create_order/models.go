package create_order

import (
	"time"

	"github.com/m04kA/SCM-OrderService/pkg/types"
)

// Request модель запроса на создание заказов. Форма позволяет выбрать
// несколько единиц техники сразу - на каждую создается отдельный заказ
// с общим заказчиком, рабочим окном и описанием работ.
type Request struct {
	OrdererName string           // Имя заказчика
	Units       []string         // Выбранная техника (минимум одна)
	Date        time.Time        // Дата работ (без времени)
	StartTime   types.TimeString // Начало рабочего окна ("08:00")
	EndTime     types.TimeString // Конец рабочего окна ("12:00")
	Details     string           // Описание работ
}

// CreatedOrder данные одного созданного заказа
type CreatedOrder struct {
	ID           int64            // ID созданного заказа
	Reference    string           // Номер заявки (REQ-00012)
	Unit         string           // Техника
	OrdererName  string           // Имя заказчика
	Date         time.Time        // Дата работ
	StartTime    types.TimeString // Начало рабочего окна
	EndTime      types.TimeString // Конец рабочего окна
	DurationPlan string           // Плановая длительность "HH:MM"
	Details      string           // Описание работ
	Status       string           // Статус (Requested)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Response модель ответа со списком созданных заказов
type Response struct {
	Orders []CreatedOrder
}
