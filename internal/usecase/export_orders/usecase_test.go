package export_orders

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SCM-OrderService/internal/domain"
	"github.com/m04kA/SCM-OrderService/pkg/ptr"
	"github.com/m04kA/SCM-OrderService/pkg/types"
)

type fakeOrderRepository struct {
	orders     []*domain.Order
	lastFilter domain.OrdersFilter
}

func (r *fakeOrderRepository) List(_ context.Context, filter domain.OrdersFilter) ([]*domain.Order, error) {
	r.lastFilter = filter
	return r.orders, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeOrderRepository) *UseCase {
	uc := NewUseCase(repo, testLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)}
	return uc
}

func sampleOrder() *domain.Order {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	actualStart := time.Date(2025, 6, 1, 8, 5, 0, 0, time.UTC)
	return &domain.Order{
		ID:              1,
		Reference:       "REQ-00001",
		Unit:            domain.UnitCrane,
		OrdererName:     "Budi",
		Date:            &date,
		StartTime:       ptr.Ptr(types.TimeString("08:00")),
		EndTime:         ptr.Ptr(types.TimeString("12:00")),
		DurationPlan:    "04:00",
		ActualStartTime: &actualStart,
		Details:         "Angkat material",
		Status:          domain.StatusOnProgress,
	}
}

func TestUseCase_Execute(t *testing.T) {
	t.Run("строит книгу с локализованными форматами", func(t *testing.T) {
		repo := &fakeOrderRepository{orders: []*domain.Order{sampleOrder()}}
		uc := newTestUseCase(repo)

		resp, err := uc.Execute(context.Background(), &Request{})
		require.NoError(t, err)

		assert.Equal(t, "orders-all-2025-06-15.xlsx", resp.Filename)

		f, err := excelize.OpenReader(bytes.NewReader(resp.Content))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Orders")
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "Reference", rows[0][1])

		row := rows[1]
		assert.Equal(t, "REQ-00001", row[1])
		assert.Equal(t, "Crane", row[2])
		assert.Equal(t, "01-06-2025", row[4])  // DD-MM-YYYY
		assert.Equal(t, "08.00", row[5])       // точка-разделитель
		assert.Equal(t, "12.00", row[6])
		assert.Equal(t, "04:00", row[7])
		assert.Equal(t, "01-06-2025 08.05", row[8])
		assert.Equal(t, "-", row[9]) // фактическое завершение еще не проставлено
	})

	t.Run("фильтр по статусу попадает в имя файла", func(t *testing.T) {
		repo := &fakeOrderRepository{}
		uc := newTestUseCase(repo)

		resp, err := uc.Execute(context.Background(), &Request{
			Status:          ptr.Ptr("On Progress"),
			IncludeInactive: true,
		})
		require.NoError(t, err)

		assert.Equal(t, "orders-on-progress-2025-06-15.xlsx", resp.Filename)
		require.NotNil(t, repo.lastFilter.Status)
		assert.Equal(t, domain.StatusOnProgress, *repo.lastFilter.Status)
		assert.True(t, repo.lastFilter.IncludeInactive)
	})

	t.Run("неизвестный статус отклоняется", func(t *testing.T) {
		uc := newTestUseCase(&fakeOrderRepository{})

		_, err := uc.Execute(context.Background(), &Request{Status: ptr.Ptr("Done")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("заказ в Pending выгружается с прочерками", func(t *testing.T) {
		order := &domain.Order{
			ID:          2,
			Reference:   "PENDING-REQ-00002",
			Unit:        domain.UnitPicker,
			OrdererName: "Siti",
			Status:      domain.StatusPending,
		}
		repo := &fakeOrderRepository{orders: []*domain.Order{order}}
		uc := newTestUseCase(repo)

		resp, err := uc.Execute(context.Background(), &Request{})
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(resp.Content))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Orders")
		require.NoError(t, err)
		require.Len(t, rows, 2)

		row := rows[1]
		assert.Equal(t, "-", row[4])
		assert.Equal(t, "-", row[5])
		assert.Equal(t, "-", row[6])
		assert.Equal(t, "-", row[7])
	})
}
