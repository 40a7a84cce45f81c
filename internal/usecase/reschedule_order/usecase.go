package reschedule_order

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SCM-OrderService/internal/domain"
	orderRepo "github.com/m04kA/SCM-OrderService/internal/infra/storage/order"
	"github.com/m04kA/SCM-OrderService/pkg/ptr"
)

// UseCase use case переноса отложенного заказа на новое рабочее окно.
// Единственный путь Pending -> Requested: перенос с новым окном.
type UseCase struct {
	orderRepo OrderRepository
	notifier  Notifier
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo: orderRepo,
		notifier:  notifier,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет use case переноса заказа.
// Проверка занятости и запись идут в одной сериализуемой транзакции,
// как и при создании заказа.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleOrder: order id=%d, date=%s, window=%s-%s",
		req.OrderID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	if req.Date.IsZero() {
		uc.logger.Warn("RescheduleOrder: date is required for order id=%d", req.OrderID)
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	var result *domain.Order

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем заказ и проверяем статус
		order, err := uc.orderRepo.GetByID(txCtx, req.OrderID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				uc.logger.Warn("RescheduleOrder: order id=%d not found", req.OrderID)
				return ErrOrderNotFound
			}
			uc.logger.Error("RescheduleOrder: failed to get order id=%d: %v", req.OrderID, err)
			return fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
		}

		if order.Status != domain.StatusPending {
			uc.logger.Warn("RescheduleOrder: order id=%d has status %s, expected Pending",
				req.OrderID, order.Status)
			return ErrNotPending
		}

		// 2. Валидация нового рабочего окна
		window := domain.Window{
			Unit:      order.Unit,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		}
		if err := window.Validate(); err != nil {
			uc.logger.Warn("RescheduleOrder: window validation failed for order id=%d: %v", req.OrderID, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 3. Активные заказы этой техники на новую дату с блокировкой (FOR UPDATE)
		filter := domain.OrdersFilter{
			Unit:            ptr.Ptr(order.Unit),
			Date:            ptr.Ptr(req.Date),
			IncludeInactive: false,
		}

		existing, err := uc.orderRepo.List(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleOrder: failed to list orders for unit %s: %v", order.Unit, err)
			return fmt.Errorf("%w: failed to list orders: %v", ErrInternal, err)
		}

		conflict, err := domain.FindConflict(window, existing)
		if err != nil {
			uc.logger.Warn("RescheduleOrder: conflict check failed for order id=%d: %v", req.OrderID, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if conflict != nil {
			uc.logger.Warn("RescheduleOrder: unit %s is busy, conflicts with %s (%s-%s)",
				order.Unit, conflict.Reference, conflict.StartTime, conflict.EndTime)
			return fmt.Errorf("%w: %s is already booked %s-%s (%s)",
				ErrUnitBusy, order.Unit, conflict.StartTime, conflict.EndTime, conflict.Reference)
		}

		// 4. Перенесенный заказ получает свежий номер заявки, старый номер
		// с префиксом PENDING- выводится из обращения
		refNumber, err := uc.orderRepo.NextReferenceNumber(txCtx)
		if err != nil {
			uc.logger.Error("RescheduleOrder: failed to allocate reference number: %v", err)
			return fmt.Errorf("%w: failed to allocate reference: %v", ErrInternal, err)
		}
		reference := domain.FormatReference(refNumber)

		durationPlan, err := domain.PlanDuration(req.StartTime, req.EndTime)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if err := uc.orderRepo.Reschedule(
			txCtx, order.ID, reference, req.Date, req.StartTime, req.EndTime, durationPlan,
		); err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				return ErrOrderNotFound
			}
			uc.logger.Error("RescheduleOrder: failed to reschedule order id=%d: %v", req.OrderID, err)
			return fmt.Errorf("%w: failed to reschedule order: %v", ErrInternal, err)
		}

		order.Status = domain.StatusRequested
		order.Reference = reference
		order.Date = ptr.Ptr(req.Date)
		order.StartTime = ptr.Ptr(req.StartTime)
		order.EndTime = ptr.Ptr(req.EndTime)
		order.DurationPlan = durationPlan
		order.ActualStartTime = nil
		order.ActualEndTime = nil
		order.DurationActual = ""

		result = order
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleOrder: successfully rescheduled order id=%d (%s)", result.ID, result.Reference)
	uc.notifier.OrderChanged(result)

	return &Response{
		ID:           result.ID,
		Reference:    result.Reference,
		Unit:         string(result.Unit),
		OrdererName:  result.OrdererName,
		Date:         *result.Date,
		StartTime:    *result.StartTime,
		EndTime:      *result.EndTime,
		DurationPlan: result.DurationPlan,
		Details:      result.Details,
		Status:       string(result.Status),
	}, nil
}
