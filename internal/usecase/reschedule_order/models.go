package reschedule_order

import (
	"time"

	"github.com/m04kA/SCM-OrderService/pkg/types"
)

// Request модель запроса на перенос отложенного заказа.
// Новое рабочее окно обязательно: без него возврат в работу невозможен.
type Request struct {
	OrderID   int64            // ID заказа в статусе Pending
	Date      time.Time        // Новая дата работ
	StartTime types.TimeString // Новое начало рабочего окна
	EndTime   types.TimeString // Новый конец рабочего окна
}

// Response модель ответа с перенесенным заказом
type Response struct {
	ID           int64            // ID заказа
	Reference    string           // Новый номер заявки (старый выведен из обращения)
	Unit         string           // Техника
	OrdererName  string           // Имя заказчика
	Date         time.Time        // Дата работ
	StartTime    types.TimeString // Начало рабочего окна
	EndTime      types.TimeString // Конец рабочего окна
	DurationPlan string           // Плановая длительность "HH:MM"
	Details      string           // Описание работ
	Status       string           // Статус (Requested)
}
