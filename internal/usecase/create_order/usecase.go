package create_order

import (
	"context"
	"fmt"

	"github.com/m04kA/SCM-OrderService/internal/domain"
	"github.com/m04kA/SCM-OrderService/pkg/ptr"
)

// UseCase use case для создания заказов на технику
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

// Execute выполняет use case создания заказов.
// Вся пачка создается в одной сериализуемой транзакции: либо техника
// свободна целиком и создаются все заказы, либо не создается ни один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateOrder: orderer=%s, units=%v, date=%s, window=%s-%s",
		req.OrdererName, req.Units, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateOrder: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация рабочего окна (формат времени, конец позже начала)
	if err := validateWindow(req); err != nil {
		uc.logger.Warn("CreateOrder: window validation failed: %v", err)
		return nil, err
	}

	// 3. Плановая длительность общая для всей пачки
	durationPlan, err := domain.PlanDuration(req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("CreateOrder: failed to compute duration: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var created []*domain.Order

	// 4. Проверка занятости и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = created[:0]

		for _, unit := range req.Units {
			unitType := domain.UnitType(unit)

			// 4.1. Активные заказы этой техники на эту дату с блокировкой (FOR UPDATE)
			filter := domain.OrdersFilter{
				Unit:            ptr.Ptr(unitType),
				Date:            ptr.Ptr(req.Date),
				IncludeInactive: false,
			}

			existing, err := uc.orderRepo.List(txCtx, filter)
			if err != nil {
				uc.logger.Error("CreateOrder: failed to list orders for unit %s: %v", unit, err)
				return fmt.Errorf("%w: failed to list orders: %v", ErrInternal, err)
			}

			// 4.2. Проверяем пересечение рабочих окон
			window := domain.Window{
				Unit:      unitType,
				Date:      req.Date,
				StartTime: req.StartTime,
				EndTime:   req.EndTime,
			}

			conflict, err := domain.FindConflict(window, existing)
			if err != nil {
				uc.logger.Warn("CreateOrder: conflict check failed for unit %s: %v", unit, err)
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if conflict != nil {
				uc.logger.Warn("CreateOrder: unit %s is busy, conflicts with %s (%s-%s)",
					unit, conflict.Reference, conflict.StartTime, conflict.EndTime)
				return fmt.Errorf("%w: %s is already booked %s-%s (%s)",
					ErrUnitBusy, unit, conflict.StartTime, conflict.EndTime, conflict.Reference)
			}

			// 4.3. Номер заявки из последовательности БД
			refNumber, err := uc.orderRepo.NextReferenceNumber(txCtx)
			if err != nil {
				uc.logger.Error("CreateOrder: failed to allocate reference number: %v", err)
				return fmt.Errorf("%w: failed to allocate reference: %v", ErrInternal, err)
			}

			order := &domain.Order{
				Reference:    domain.FormatReference(refNumber),
				Unit:         unitType,
				OrdererName:  req.OrdererName,
				Date:         ptr.Ptr(req.Date),
				StartTime:    ptr.Ptr(req.StartTime),
				EndTime:      ptr.Ptr(req.EndTime),
				DurationPlan: durationPlan,
				Details:      req.Details,
				Status:       domain.StatusRequested,
			}

			stored, err := uc.orderRepo.Create(txCtx, order)
			if err != nil {
				uc.logger.Error("CreateOrder: failed to create order for unit %s: %v", unit, err)
				return fmt.Errorf("%w: failed to create order: %v", ErrInternal, err)
			}

			created = append(created, stored)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// 5. Уведомления - только после фиксации транзакции
	resp := &Response{Orders: make([]CreatedOrder, 0, len(created))}
	for _, order := range created {
		uc.logger.Info("CreateOrder: successfully created order id=%d (%s) for unit %s",
			order.ID, order.Reference, order.Unit)
		uc.notifier.OrderCreated(order)

		resp.Orders = append(resp.Orders, CreatedOrder{
			ID:           order.ID,
			Reference:    order.Reference,
			Unit:         string(order.Unit),
			OrdererName:  order.OrdererName,
			Date:         *order.Date,
			StartTime:    *order.StartTime,
			EndTime:      *order.EndTime,
			DurationPlan: order.DurationPlan,
			Details:      order.Details,
			Status:       string(order.Status),
			CreatedAt:    order.CreatedAt,
			UpdatedAt:    order.UpdatedAt,
		})
	}

	return resp, nil
}

// validateWindow проверяет рабочее окно на первой единице техники:
// окно у всей пачки общее
func validateWindow(req *Request) error {
	window := domain.Window{
		Unit:      domain.UnitType(req.Units[0]),
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := window.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
