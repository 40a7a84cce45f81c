package export_orders

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SCM-OrderService/internal/domain"
	"github.com/m04kA/SCM-OrderService/pkg/types"
)

const sheetName = "Orders"

var headers = []string{
	"No",
	"Reference",
	"Unit",
	"Orderer",
	"Date",
	"Start Time",
	"End Time",
	"Duration Plan",
	"Actual Start",
	"Actual End",
	"Duration Actual",
	"Details",
	"Status",
}

// UseCase use case выгрузки заказов в XLSX отчет
type UseCase struct {
	orderRepo    OrderRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(orderRepo OrderRepository, logger Logger) *UseCase {
	return &UseCase{
		orderRepo:    orderRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case выгрузки. Чистое преобразование данных:
// выборка по фильтру и построчная запись в книгу XLSX.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	filter, label, err := buildFilter(req)
	if err != nil {
		uc.logger.Warn("ExportOrders: invalid filter: %v", err)
		return nil, err
	}

	uc.logger.Info("ExportOrders: exporting orders, filter=%s", label)

	orders, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("ExportOrders: failed to list orders: %v", err)
		return nil, fmt.Errorf("%w: failed to list orders: %v", ErrInternal, err)
	}

	content, err := uc.buildWorkbook(orders)
	if err != nil {
		uc.logger.Error("ExportOrders: failed to build workbook: %v", err)
		return nil, fmt.Errorf("%w: failed to build workbook: %v", ErrInternal, err)
	}

	filename := fmt.Sprintf("orders-%s-%s.xlsx",
		label, uc.timeProvider.Now().Format(domain.DateFormat))

	uc.logger.Info("ExportOrders: exported %d orders to %s", len(orders), filename)

	return &Response{Filename: filename, Content: content}, nil
}

func (uc *UseCase) buildWorkbook(orders []*domain.Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(sheet)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return nil, err
	}

	for i, order := range orders {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, orderRow(i+1, order)); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// orderRow форматирует одну строку отчета: даты DD-MM-YYYY,
// время с точкой-разделителем (08.00), пустые поля - "-"
func orderRow(no int, o *domain.Order) *[]interface{} {
	row := []interface{}{
		no,
		o.Reference,
		string(o.Unit),
		o.OrdererName,
		formatDate(o),
		formatTime(o.StartTime),
		formatTime(o.EndTime),
		orDash(o.DurationPlan),
		formatTimestamp(o.ActualStartTime),
		formatTimestamp(o.ActualEndTime),
		orDash(o.DurationActual),
		o.Details,
		string(o.Status),
	}
	return &row
}

func buildFilter(req *Request) (domain.OrdersFilter, string, error) {
	filter := domain.OrdersFilter{IncludeInactive: req.IncludeInactive}
	label := "all"

	if req.Status != nil {
		status := domain.OrderStatus(*req.Status)
		if !domain.IsValidStatus(status) {
			return filter, "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
		label = slugify(*req.Status)
	}

	if req.Unit != nil {
		unit := domain.UnitType(*req.Unit)
		if !domain.IsValidUnit(unit) {
			return filter, "", fmt.Errorf("%w: unknown unit %q", ErrInvalidInput, *req.Unit)
		}
		filter.Unit = &unit
	}

	return filter, label, nil
}

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

func formatDate(o *domain.Order) string {
	if o.Date == nil {
		return "-"
	}
	return o.Date.Format(domain.DisplayDateFormat)
}

func formatTime(t *types.TimeString) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return strings.ReplaceAll(t.String(), ":", ".")
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(domain.DisplayDateFormat + " " + domain.ExportTimeFormat)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
