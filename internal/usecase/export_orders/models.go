package export_orders

// Request модель запроса на выгрузку заказов в XLSX
type Request struct {
	Status          *string // Фильтр по статусу (опционально)
	Unit            *string // Фильтр по технике (опционально)
	IncludeInactive bool    // Включать ли Closed/Canceled заказы
}

// Response готовый файл отчета
type Response struct {
	Filename string // Имя файла: orders-<фильтр>-<дата ISO>.xlsx
	Content  []byte // Содержимое XLSX
}
