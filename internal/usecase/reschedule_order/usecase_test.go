package reschedule_order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SCM-OrderService/internal/domain"
	orderRepo "github.com/m04kA/SCM-OrderService/internal/infra/storage/order"
	"github.com/m04kA/SCM-OrderService/pkg/ptr"
	"github.com/m04kA/SCM-OrderService/pkg/types"
)

type fakeOrderRepository struct {
	orders  map[int64]*domain.Order
	nextRef int64
}

func newFakeOrderRepository(orders ...*domain.Order) *fakeOrderRepository {
	repo := &fakeOrderRepository{orders: make(map[int64]*domain.Order), nextRef: 100}
	for _, o := range orders {
		cp := *o
		repo.orders[o.ID] = &cp
	}
	return repo
}

func (r *fakeOrderRepository) NextReferenceNumber(_ context.Context) (int64, error) {
	r.nextRef++
	return r.nextRef, nil
}

func (r *fakeOrderRepository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepository) List(_ context.Context, filter domain.OrdersFilter) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if filter.Unit != nil && o.Unit != *filter.Unit {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeOrderRepository) Reschedule(
	_ context.Context,
	id int64,
	reference string,
	date time.Time,
	startTime, endTime types.TimeString,
	durationPlan string,
) error {
	o, ok := r.orders[id]
	if !ok {
		return orderRepo.ErrOrderNotFound
	}
	o.Status = domain.StatusRequested
	o.Reference = reference
	o.Date = &date
	o.StartTime = &startTime
	o.EndTime = &endTime
	o.DurationPlan = durationPlan
	o.ActualStartTime = nil
	o.ActualEndTime = nil
	o.DurationActual = ""
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	changed []string
}

func (n *fakeNotifier) OrderChanged(order *domain.Order) {
	n.changed = append(n.changed, order.Reference)
}

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

func pendingOrder(id int64) *domain.Order {
	return &domain.Order{
		ID:          id,
		Reference:   "PENDING-REQ-00001",
		Unit:        domain.UnitCrane,
		OrdererName: "Budi",
		Details:     "Angkat material",
		Status:      domain.StatusPending,
	}
}

func blockingOrder(id int64, unit domain.UnitType, date time.Time, start, end string) *domain.Order {
	return &domain.Order{
		ID:        id,
		Reference: "REQ-00050",
		Unit:      unit,
		Date:      &date,
		StartTime: ptr.Ptr(types.TimeString(start)),
		EndTime:   ptr.Ptr(types.TimeString(end)),
		Status:    domain.StatusRequested,
	}
}

func validRequest(id int64) *Request {
	return &Request{
		OrderID:   id,
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("08:00"),
		EndTime:   types.TimeString("11:00"),
	}
}

func TestUseCase_Execute(t *testing.T) {
	t.Run("перенос выдает новый номер и возвращает заказ в работу", func(t *testing.T) {
		repo := newFakeOrderRepository(pendingOrder(1))
		notifier := &fakeNotifier{}
		uc := NewUseCase(repo, notifier, passthroughTxManager{}, testLogger{})

		resp, err := uc.Execute(context.Background(), validRequest(1))
		require.NoError(t, err)

		// Старый номер PENDING-REQ-00001 выведен из обращения
		assert.Equal(t, "REQ-00101", resp.Reference)
		assert.Equal(t, "Requested", resp.Status)
		assert.Equal(t, "03:00", resp.DurationPlan)
		assert.Equal(t, []string{"REQ-00101"}, notifier.changed)
	})

	t.Run("заказ не в Pending переносить нельзя", func(t *testing.T) {
		order := pendingOrder(1)
		order.Status = domain.StatusRequested
		order.Reference = "REQ-00001"

		repo := newFakeOrderRepository(order)
		uc := NewUseCase(repo, &fakeNotifier{}, passthroughTxManager{}, testLogger{})

		_, err := uc.Execute(context.Background(), validRequest(1))
		assert.ErrorIs(t, err, ErrNotPending)
	})

	t.Run("новое окно проверяется на пересечения", func(t *testing.T) {
		date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		repo := newFakeOrderRepository(
			pendingOrder(1),
			blockingOrder(2, domain.UnitCrane, date, "10:00", "12:00"),
		)
		notifier := &fakeNotifier{}
		uc := NewUseCase(repo, notifier, passthroughTxManager{}, testLogger{})

		_, err := uc.Execute(context.Background(), validRequest(1))
		require.ErrorIs(t, err, ErrUnitBusy)
		assert.Contains(t, err.Error(), "REQ-00050")
		assert.Empty(t, notifier.changed)
	})

	t.Run("заказ другой техники не мешает переносу", func(t *testing.T) {
		date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		repo := newFakeOrderRepository(
			pendingOrder(1),
			blockingOrder(2, domain.UnitPicker, date, "08:00", "11:00"),
		)
		uc := NewUseCase(repo, &fakeNotifier{}, passthroughTxManager{}, testLogger{})

		resp, err := uc.Execute(context.Background(), validRequest(1))
		require.NoError(t, err)
		assert.Equal(t, "Requested", resp.Status)
	})

	t.Run("несуществующий заказ", func(t *testing.T) {
		repo := newFakeOrderRepository()
		uc := NewUseCase(repo, &fakeNotifier{}, passthroughTxManager{}, testLogger{})

		_, err := uc.Execute(context.Background(), validRequest(42))
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("некорректное окно", func(t *testing.T) {
		repo := newFakeOrderRepository(pendingOrder(1))
		uc := NewUseCase(repo, &fakeNotifier{}, passthroughTxManager{}, testLogger{})

		req := validRequest(1)
		req.StartTime = types.TimeString("11:00")
		req.EndTime = types.TimeString("08:00")

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
