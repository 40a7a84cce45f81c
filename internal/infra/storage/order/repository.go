package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SCM-OrderService/internal/domain"
	"github.com/m04kA/SCM-OrderService/pkg/dbmetrics"
	"github.com/m04kA/SCM-OrderService/pkg/psqlbuilder"
	"github.com/m04kA/SCM-OrderService/pkg/types"
)

// uniqueViolation код ошибки Postgres при нарушении unique constraint
const uniqueViolation = "23505"

var orderColumns = []string{
	"id",
	"reference",
	"unit",
	"orderer_name",
	"date",
	"start_time",
	"end_time",
	"duration_plan",
	"actual_start_time",
	"actual_end_time",
	"duration_actual",
	"details",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заказами техники
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// NextReferenceNumber выделяет следующий порядковый номер заявки из
// последовательности order_reference_seq. Атомарно на стороне БД, поэтому
// параллельные запросы не получают одинаковый номер (в отличие от схемы
// "найти максимум и прибавить единицу").
func (r *Repository) NextReferenceNumber(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var n int64
	err := executor.QueryRowContext(ctx, "SELECT nextval('order_reference_seq')").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%w: NextReferenceNumber - nextval: %v", ErrExecQuery, err)
	}

	return n, nil
}

// Create создает новый заказ.
// Если в контексте передана активная транзакция, использует её -
// пакетное создание нескольких заказов выполняется атомарно.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"reference",
			"unit",
			"orderer_name",
			"date",
			"start_time",
			"end_time",
			"duration_plan",
			"details",
			"status",
		).
		Values(
			order.Reference,
			order.Unit,
			order.OrdererName,
			order.Date,
			order.StartTime,
			order.EndTime,
			order.DurationPlan,
			order.Details,
			order.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&order.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Create - reference=%s", ErrDuplicateReference, order.Reference)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return order, nil
}

// GetByID получает заказ по суррогатному ключу
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	order, err := scanOrder(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %v", ErrScanRow, err)
	}

	return order, nil
}

// List получает заказы с фильтрацией по технике, дате и статусу.
// По умолчанию Closed и Canceled скрыты (IncludeInactive = false).
//
// Внутри транзакции при заданной дате добавляется FOR UPDATE - строки
// блокируются на время проверки пересечений, чтобы параллельная запись
// не приняла конфликтующий заказ.
func (r *Repository) List(ctx context.Context, filter domain.OrdersFilter) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(orderColumns...).
		From("orders")

	if filter.Unit != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"unit": *filter.Unit})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"date": *filter.Date})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	// Для конкретной даты сортируем по времени начала, иначе - сначала новые
	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("start_time ASC NULLS LAST")
	} else {
		selectBuilder = selectBuilder.OrderBy("created_at DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// CountByStatus возвращает количество заказов в каждом статусе
// (сводка для дашборда)
func (r *Repository) CountByStatus(ctx context.Context) (map[domain.OrderStatus]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("orders").
		GroupBy("status").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.OrderStatus]int, len(domain.OrderStatuses))
	for rows.Next() {
		var status domain.OrderStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %v", ErrScanRow, err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// Update обновляет редактируемые поля заказа (форма редактирования).
// Статус и фактические отметки времени этим методом не трогаются.
func (r *Repository) Update(ctx context.Context, order *domain.Order) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("unit", order.Unit).
		Set("orderer_name", order.OrdererName).
		Set("date", order.Date).
		Set("start_time", order.StartTime).
		Set("end_time", order.EndTime).
		Set("duration_plan", order.DurationPlan).
		Set("details", order.Details).
		Where(squirrel.Eq{"id": order.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Update", query, args)
}

// Hold переводит заказ в Pending: рабочее окно и плановая длительность
// обнуляются, номер заявки получает префикс PENDING-
func (r *Repository) Hold(ctx context.Context, id int64, reference string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("status", domain.StatusPending).
		Set("reference", reference).
		Set("date", nil).
		Set("start_time", nil).
		Set("end_time", nil).
		Set("duration_plan", "").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Hold - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Hold", query, args)
}

// Reschedule возвращает заказ из Pending в Requested с новым номером заявки
// и новым рабочим окном; фактические отметки времени сбрасываются
func (r *Repository) Reschedule(
	ctx context.Context,
	id int64,
	reference string,
	date time.Time,
	startTime, endTime types.TimeString,
	durationPlan string,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("status", domain.StatusRequested).
		Set("reference", reference).
		Set("date", date).
		Set("start_time", startTime).
		Set("end_time", endTime).
		Set("duration_plan", durationPlan).
		Set("actual_start_time", nil).
		Set("actual_end_time", nil).
		Set("duration_actual", "").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Reschedule", query, args)
}

// Cancel переводит заказ в Canceled с перемаркировкой номера заявки.
// Строка сохраняется - физического удаления заказов нет.
func (r *Repository) Cancel(ctx context.Context, id int64, reference string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("status", domain.StatusCanceled).
		Set("reference", reference).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Cancel", query, args)
}

// Start переводит заказ в On Progress с отметкой фактического начала работ
func (r *Repository) Start(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("status", domain.StatusOnProgress).
		Set("actual_start_time", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Start - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Start", query, args)
}

// Close переводит заказ в Closed с отметкой фактического завершения
// и вычисленной фактической длительностью
func (r *Repository) Close(ctx context.Context, id int64, at time.Time, durationActual string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("status", domain.StatusClosed).
		Set("actual_end_time", at).
		Set("duration_actual", durationActual).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Close - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Close", query, args)
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// scanOrder сканирует одну строку в domain.Order
func scanOrder(scan func(dest ...interface{}) error) (*domain.Order, error) {
	var order domain.Order
	var date, actualStart, actualEnd, createdAt, updatedAt sql.NullTime
	var startTime, endTime types.TimeString

	err := scan(
		&order.ID,
		&order.Reference,
		&order.Unit,
		&order.OrdererName,
		&date,
		&startTime,
		&endTime,
		&order.DurationPlan,
		&actualStart,
		&actualEnd,
		&order.DurationActual,
		&order.Details,
		&order.Status,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	if date.Valid {
		order.Date = &date.Time
	}
	if !startTime.IsZero() {
		order.StartTime = &startTime
	}
	if !endTime.IsZero() {
		order.EndTime = &endTime
	}
	if actualStart.Valid {
		order.ActualStartTime = &actualStart.Time
	}
	if actualEnd.Valid {
		order.ActualEndTime = &actualEnd.Time
	}
	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return &order, nil
}

// scanOrders сканирует результаты запроса в слайс заказов
func scanOrders(rows *sql.Rows) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0)

	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanOrders - scan row: %v", ErrScanRow, err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanOrders - rows error: %v", ErrScanRow, err)
	}

	return orders, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
