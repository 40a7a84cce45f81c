package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD

	// DisplayDateFormat локализованный формат даты для отчетов (DD-MM-YYYY)
	DisplayDateFormat = "02-01-2006"

	// MessageDateFormat формат даты в WhatsApp уведомлениях (DD/MM/YYYY)
	MessageDateFormat = "02/01/2006"

	// ExportTimeFormat формат времени в отчетах, разделитель - точка (HH.MM)
	ExportTimeFormat = "15.04"
)

// ZeroDuration значение длительности, когда вычислить ее нечем
const ZeroDuration = "00:00"

// UnitTypes закрытый список категорий техники, доступных для заказа
var UnitTypes = []UnitType{
	UnitCrane,
	UnitFocoCrane,
	UnitPrimemover,
	UnitPicker,
	UnitTSO,
	UnitTangkiAir,
}

// IsValidUnit проверяет, что unit входит в закрытый список техники
func IsValidUnit(unit UnitType) bool {
	for _, u := range UnitTypes {
		if u == unit {
			return true
		}
	}
	return false
}

// BlockingStatuses статусы, при которых заказ занимает свое рабочее окно.
// Pending исключен: у заказа в Pending нет даты и времени.
var BlockingStatuses = []OrderStatus{
	StatusRequested,
	StatusOnProgress,
}

// InactiveStatuses статусы, скрываемые из выборок по умолчанию
var InactiveStatuses = []OrderStatus{
	StatusClosed,
	StatusCanceled,
}

// IsActive возвращает true, если статус не относится к InactiveStatuses
func (s OrderStatus) IsActive() bool {
	for _, inactive := range InactiveStatuses {
		if s == inactive {
			return false
		}
	}
	return true
}

// OrderStatuses полный список статусов жизненного цикла
var OrderStatuses = []OrderStatus{
	StatusRequested,
	StatusOnProgress,
	StatusPending,
	StatusClosed,
	StatusCanceled,
}

// IsValidStatus проверяет, что status входит в список статусов
func IsValidStatus(status OrderStatus) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
