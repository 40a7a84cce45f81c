package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SCM-OrderService/internal/domain"
	orderRepo "github.com/m04kA/SCM-OrderService/internal/infra/storage/order"
	"github.com/m04kA/SCM-OrderService/internal/service/orders/models"
	"github.com/m04kA/SCM-OrderService/pkg/ptr"
	"github.com/m04kA/SCM-OrderService/pkg/types"
)

// fakeOrderRepository in-memory репозиторий для тестов сервиса
type fakeOrderRepository struct {
	orders map[int64]*domain.Order
	err    error
}

func newFakeOrderRepository(orders ...*domain.Order) *fakeOrderRepository {
	repo := &fakeOrderRepository{orders: make(map[int64]*domain.Order)}
	for _, o := range orders {
		cp := *o
		repo.orders[o.ID] = &cp
	}
	return repo
}

func (r *fakeOrderRepository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	o, ok := r.orders[id]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepository) List(_ context.Context, filter domain.OrdersFilter) ([]*domain.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Order
	for _, o := range r.orders {
		if !filter.IncludeInactive && !o.Status.IsActive() {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeOrderRepository) CountByStatus(_ context.Context) (map[domain.OrderStatus]int, error) {
	if r.err != nil {
		return nil, r.err
	}
	counts := make(map[domain.OrderStatus]int)
	for _, o := range r.orders {
		counts[o.Status]++
	}
	return counts, nil
}

func (r *fakeOrderRepository) Update(_ context.Context, order *domain.Order) error {
	stored, ok := r.orders[order.ID]
	if !ok {
		return orderRepo.ErrOrderNotFound
	}
	stored.Unit = order.Unit
	stored.OrdererName = order.OrdererName
	stored.Date = order.Date
	stored.StartTime = order.StartTime
	stored.EndTime = order.EndTime
	stored.DurationPlan = order.DurationPlan
	stored.Details = order.Details
	return nil
}

func (r *fakeOrderRepository) Hold(_ context.Context, id int64, reference string) error {
	o, ok := r.orders[id]
	if !ok {
		return orderRepo.ErrOrderNotFound
	}
	o.Status = domain.StatusPending
	o.Reference = reference
	o.Date = nil
	o.StartTime = nil
	o.EndTime = nil
	o.DurationPlan = ""
	return nil
}

func (r *fakeOrderRepository) Cancel(_ context.Context, id int64, reference string) error {
	o, ok := r.orders[id]
	if !ok {
		return orderRepo.ErrOrderNotFound
	}
	o.Status = domain.StatusCanceled
	o.Reference = reference
	return nil
}

func (r *fakeOrderRepository) Start(_ context.Context, id int64, at time.Time) error {
	o, ok := r.orders[id]
	if !ok {
		return orderRepo.ErrOrderNotFound
	}
	o.Status = domain.StatusOnProgress
	o.ActualStartTime = &at
	return nil
}

func (r *fakeOrderRepository) Close(_ context.Context, id int64, at time.Time, durationActual string) error {
	o, ok := r.orders[id]
	if !ok {
		return orderRepo.ErrOrderNotFound
	}
	o.Status = domain.StatusClosed
	o.ActualEndTime = &at
	o.DurationActual = durationActual
	return nil
}

// fakeNotifier запоминает, какие уведомления были отправлены
type fakeNotifier struct {
	changed  []string
	canceled []string
}

func (n *fakeNotifier) OrderChanged(order *domain.Order)  { n.changed = append(n.changed, order.Reference) }
func (n *fakeNotifier) OrderCanceled(order *domain.Order) { n.canceled = append(n.canceled, order.Reference) }

// fixedTimeProvider фиксированное время для тестов
type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeOrderRepository, notifier *fakeNotifier, now time.Time) *Service {
	svc := NewService(repo, notifier, testLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}
	return svc
}

func scheduledOrder(id int64, status domain.OrderStatus) *domain.Order {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	start := types.TimeString("08:00")
	end := types.TimeString("12:00")
	return &domain.Order{
		ID:           id,
		Reference:    domain.FormatReference(id),
		Unit:         domain.UnitCrane,
		OrdererName:  "Budi",
		Date:         &date,
		StartTime:    &start,
		EndTime:      &end,
		DurationPlan: "04:00",
		Details:      "Angkat material",
		Status:       status,
	}
}

func TestService_GetByID(t *testing.T) {
	repo := newFakeOrderRepository(scheduledOrder(1, domain.StatusRequested))
	svc := newTestService(repo, &fakeNotifier{}, time.Now())

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "REQ-00001", resp.Reference)
	assert.Equal(t, "Crane", resp.Unit)

	_, err = svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestService_Update(t *testing.T) {
	t.Run("успешное редактирование пересчитывает плановую длительность", func(t *testing.T) {
		repo := newFakeOrderRepository(scheduledOrder(1, domain.StatusRequested))
		notifier := &fakeNotifier{}
		svc := newTestService(repo, notifier, time.Now())

		date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
		resp, err := svc.Update(context.Background(), 1, &models.UpdateOrderRequest{
			Unit:        domain.UnitPicker,
			OrdererName: "Siti",
			Date:        &date,
			StartTime:   ptr.Ptr(types.TimeString("22:00")),
			EndTime:     ptr.Ptr(types.TimeString("02:00")),
			Details:     "Pindah rak",
		})
		require.NoError(t, err)

		// Окно через полночь: 22:00 - 02:00 = 4 часа
		assert.Equal(t, "04:00", resp.DurationPlan)
		assert.Equal(t, "Picker", resp.Unit)
		assert.Equal(t, []string{"REQ-00001"}, notifier.changed)
	})

	t.Run("завершенный заказ редактировать нельзя", func(t *testing.T) {
		repo := newFakeOrderRepository(scheduledOrder(1, domain.StatusClosed))
		svc := newTestService(repo, &fakeNotifier{}, time.Now())

		_, err := svc.Update(context.Background(), 1, &models.UpdateOrderRequest{
			Unit:        domain.UnitCrane,
			OrdererName: "Budi",
		})
		assert.ErrorIs(t, err, ErrCannotEdit)
	})

	t.Run("пустое имя заказчика отклоняется", func(t *testing.T) {
		repo := newFakeOrderRepository(scheduledOrder(1, domain.StatusRequested))
		svc := newTestService(repo, &fakeNotifier{}, time.Now())

		_, err := svc.Update(context.Background(), 1, &models.UpdateOrderRequest{
			Unit: domain.UnitCrane,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_UpdateStatus_Hold(t *testing.T) {
	repo := newFakeOrderRepository(scheduledOrder(1, domain.StatusRequested))
	svc := newTestService(repo, &fakeNotifier{}, time.Now())

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "Pending"})
	require.NoError(t, err)

	assert.Equal(t, "Pending", resp.Status)
	assert.Equal(t, "PENDING-REQ-00001", resp.Reference)
	assert.Nil(t, resp.Date)
	assert.Nil(t, resp.StartTime)
	assert.Nil(t, resp.EndTime)
	assert.Empty(t, resp.DurationPlan)
}

func TestService_UpdateStatus_StartAndClose(t *testing.T) {
	startAt := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	repo := newFakeOrderRepository(scheduledOrder(1, domain.StatusRequested))
	svc := newTestService(repo, &fakeNotifier{}, startAt)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "On Progress"})
	require.NoError(t, err)
	assert.Equal(t, "On Progress", resp.Status)
	require.NotNil(t, resp.ActualStartTime)
	assert.Equal(t, startAt.Format(time.RFC3339), *resp.ActualStartTime)

	// Закрываем через полтора часа после начала
	svc.timeProvider = &fixedTimeProvider{now: startAt.Add(90 * time.Minute)}
	resp, err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "Closed"})
	require.NoError(t, err)
	assert.Equal(t, "Closed", resp.Status)
	assert.Equal(t, "01:30", resp.DurationActual)
}

func TestService_UpdateStatus_CloseWithoutStart(t *testing.T) {
	repo := newFakeOrderRepository(scheduledOrder(1, domain.StatusRequested))
	svc := newTestService(repo, &fakeNotifier{}, time.Now())

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "Closed"})
	require.NoError(t, err)

	// Без фактического начала работ длительность нулевая
	assert.Equal(t, "00:00", resp.DurationActual)
}

func TestService_UpdateStatus_PendingRequiresReschedule(t *testing.T) {
	order := scheduledOrder(1, domain.StatusPending)
	order.Reference = "PENDING-REQ-00001"
	order.Date = nil
	order.StartTime = nil
	order.EndTime = nil

	repo := newFakeOrderRepository(order)
	svc := newTestService(repo, &fakeNotifier{}, time.Now())

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "Requested"})
	assert.ErrorIs(t, err, ErrRescheduleRequired)
}

func TestService_UpdateStatus_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.OrderStatus
		target string
	}{
		{"из Canceled никуда нельзя", domain.StatusCanceled, "Requested"},
		{"из Pending нельзя в On Progress", domain.StatusPending, "On Progress"},
		{"из Pending нельзя в Closed", domain.StatusPending, "Closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeOrderRepository(scheduledOrder(1, tt.from))
			svc := newTestService(repo, &fakeNotifier{}, time.Now())

			_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tt.target})
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestService_UpdateStatus_CancelClosedOrder(t *testing.T) {
	repo := newFakeOrderRepository(scheduledOrder(1, domain.StatusClosed))
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier, time.Now())

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "Canceled"})
	require.NoError(t, err)

	assert.Equal(t, "Canceled", resp.Status)
	assert.Equal(t, "CANCELED-REQ-00001", resp.Reference)
	assert.Equal(t, []string{"CANCELED-REQ-00001"}, notifier.canceled)
}

func TestService_UpdateStatus_UnknownStatus(t *testing.T) {
	repo := newFakeOrderRepository(scheduledOrder(1, domain.StatusRequested))
	svc := newTestService(repo, &fakeNotifier{}, time.Now())

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "Done"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_Cancel(t *testing.T) {
	t.Run("отмена срезает префикс PENDING перед добавлением CANCELED", func(t *testing.T) {
		order := scheduledOrder(1, domain.StatusPending)
		order.Reference = "PENDING-REQ-00001"

		repo := newFakeOrderRepository(order)
		notifier := &fakeNotifier{}
		svc := newTestService(repo, notifier, time.Now())

		resp, err := svc.Cancel(context.Background(), 1)
		require.NoError(t, err)

		assert.Equal(t, "CANCELED-REQ-00001", resp.Reference)
		assert.Equal(t, "Canceled", resp.Status)
		assert.Equal(t, []string{"CANCELED-REQ-00001"}, notifier.canceled)
	})

	t.Run("повторная отмена отклоняется", func(t *testing.T) {
		order := scheduledOrder(1, domain.StatusCanceled)
		order.Reference = "CANCELED-REQ-00001"

		repo := newFakeOrderRepository(order)
		svc := newTestService(repo, &fakeNotifier{}, time.Now())

		_, err := svc.Cancel(context.Background(), 1)
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("закрытый заказ можно отменить", func(t *testing.T) {
		repo := newFakeOrderRepository(scheduledOrder(1, domain.StatusClosed))
		notifier := &fakeNotifier{}
		svc := newTestService(repo, notifier, time.Now())

		resp, err := svc.Cancel(context.Background(), 1)
		require.NoError(t, err)

		assert.Equal(t, "Canceled", resp.Status)
		assert.Equal(t, "CANCELED-REQ-00001", resp.Reference)
		assert.Equal(t, []string{"CANCELED-REQ-00001"}, notifier.canceled)
	})
}

func TestService_List(t *testing.T) {
	repo := newFakeOrderRepository(
		scheduledOrder(1, domain.StatusRequested),
		scheduledOrder(2, domain.StatusCanceled),
	)
	svc := newTestService(repo, &fakeNotifier{}, time.Now())

	resp, err := svc.List(context.Background(), &models.ListOrdersRequest{})
	require.NoError(t, err)

	// Неактивные статусы по умолчанию скрыты, но в сводке присутствуют
	assert.Len(t, resp.Orders, 1)
	assert.Equal(t, 1, resp.Counts["Requested"])
	assert.Equal(t, 1, resp.Counts["Canceled"])
}
