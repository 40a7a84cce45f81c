package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SCM-OrderService/internal/domain"
	orderRepo "github.com/m04kA/SCM-OrderService/internal/infra/storage/order"
	"github.com/m04kA/SCM-OrderService/internal/service/orders/models"
)

// Service сервис жизненного цикла заказов: чтение, редактирование
// и переходы статусов с их побочными эффектами
type Service struct {
	orderRepo    OrderRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(orderRepo OrderRepository, notifier Notifier, logger Logger) *Service {
	return &Service{
		orderRepo:    orderRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает заказ по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.OrderResponse, error) {
	order, err := s.fetch(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainOrder(order), nil
}

// List получает заказы с фильтрацией и сводку количества по статусам
func (s *Service) List(ctx context.Context, req *models.ListOrdersRequest) (*models.OrderListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("List: failed to count orders by status: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d orders", len(orders))
	return models.FromDomainOrderList(orders, counts), nil
}

// Update редактирует детали заказа (форма Edit): техника, имя заказчика,
// рабочее окно, описание работ. Статус не меняется. Если изменилось время,
// плановая длительность пересчитывается; фактическая - никогда.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateOrderRequest) (*models.OrderResponse, error) {
	s.logger.Info("Update: updating order id=%d", id)

	if req.OrdererName == "" {
		s.logger.Warn("Update: empty orderer name for order id=%d", id)
		return nil, fmt.Errorf("%w: orderer name is required", ErrInvalidInput)
	}
	if !domain.IsValidUnit(req.Unit) {
		s.logger.Warn("Update: invalid unit %q for order id=%d", req.Unit, id)
		return nil, fmt.Errorf("%w: unknown unit %q", ErrInvalidInput, req.Unit)
	}

	order, err := s.fetch(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if !order.CanBeEdited() {
		s.logger.Warn("Update: order id=%d cannot be edited, status=%s", id, order.Status)
		return nil, ErrCannotEdit
	}

	order.Unit = req.Unit
	order.OrdererName = req.OrdererName
	order.Date = req.Date
	order.StartTime = req.StartTime
	order.EndTime = req.EndTime
	order.Details = req.Details

	// Пересчитываем плановую длительность, если рабочее окно заполнено
	if order.StartTime != nil && order.EndTime != nil {
		durationPlan, err := domain.PlanDuration(*order.StartTime, *order.EndTime)
		if err != nil {
			s.logger.Warn("Update: invalid time window for order id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		order.DurationPlan = durationPlan
	} else {
		order.DurationPlan = ""
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		s.logger.Error("Update: repository error for order id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated order id=%d (%s)", id, order.Reference)
	s.notifier.OrderChanged(order)

	return models.FromDomainOrder(order), nil
}

// UpdateStatus выполняет переход статуса с побочными эффектами:
//   - Pending: рабочее окно обнуляется, номер получает префикс PENDING-
//   - On Progress: фиксируется фактическое начало работ
//   - Closed: фиксируется фактическое завершение и фактическая длительность
//   - Canceled: перемаркировка номера, см. Cancel
//
// Переход Pending -> Requested здесь заблокирован: без нового рабочего
// окна он не имеет смысла, вызывающая сторона обязана использовать
// операцию переноса.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.OrderResponse, error) {
	target, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status %q for order id=%d", req.Status, id)
		return nil, ErrInvalidStatus
	}

	order, err := s.fetch(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: order id=%d (%s) %s -> %s", id, order.Reference, order.Status, target)

	if target == domain.StatusRequested {
		if order.Status == domain.StatusPending {
			s.logger.Warn("UpdateStatus: order id=%d is pending, reschedule required", id)
			return nil, ErrRescheduleRequired
		}
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, target)
	}

	if !canTransition(order.Status, target) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for order id=%d", order.Status, target, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, target)
	}

	switch target {
	case domain.StatusPending:
		err = s.hold(ctx, order)
	case domain.StatusOnProgress:
		err = s.start(ctx, order)
	case domain.StatusClosed:
		err = s.close(ctx, order)
	case domain.StatusCanceled:
		err = s.cancel(ctx, order)
	default:
		err = fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, target)
	}

	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: order id=%d is now %s (%s)", id, order.Status, order.Reference)
	return models.FromDomainOrder(order), nil
}

// Cancel отменяет заказ: все префиксы жизненного цикла срезаются,
// номер получает префикс CANCELED-. Строка не удаляется.
func (s *Service) Cancel(ctx context.Context, id int64) (*models.OrderResponse, error) {
	order, err := s.fetch(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if err := s.cancel(ctx, order); err != nil {
		return nil, err
	}

	return models.FromDomainOrder(order), nil
}

// hold переводит заказ в Pending: рабочее окно и плановая длительность
// обнуляются, к базовому номеру добавляется PENDING-
func (s *Service) hold(ctx context.Context, order *domain.Order) error {
	reference := domain.PendingReference(order.Reference)

	if err := s.orderRepo.Hold(ctx, order.ID, reference); err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		s.logger.Error("UpdateStatus: failed to hold order id=%d: %v", order.ID, err)
		return fmt.Errorf("%w: hold - repository error: %v", ErrInternal, err)
	}

	order.Status = domain.StatusPending
	order.Reference = reference
	order.Date = nil
	order.StartTime = nil
	order.EndTime = nil
	order.DurationPlan = ""

	return nil
}

func (s *Service) start(ctx context.Context, order *domain.Order) error {
	now := s.timeProvider.Now()

	if err := s.orderRepo.Start(ctx, order.ID, now); err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		s.logger.Error("UpdateStatus: failed to start order id=%d: %v", order.ID, err)
		return fmt.Errorf("%w: start - repository error: %v", ErrInternal, err)
	}

	order.Status = domain.StatusOnProgress
	order.ActualStartTime = &now

	return nil
}

// close фиксирует завершение работ. Если заказ закрывают без перевода
// в On Progress, фактическая длительность равна "00:00".
func (s *Service) close(ctx context.Context, order *domain.Order) error {
	now := s.timeProvider.Now()
	durationActual := domain.ActualDuration(order.ActualStartTime, &now)

	if err := s.orderRepo.Close(ctx, order.ID, now, durationActual); err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		s.logger.Error("UpdateStatus: failed to close order id=%d: %v", order.ID, err)
		return fmt.Errorf("%w: close - repository error: %v", ErrInternal, err)
	}

	order.Status = domain.StatusClosed
	order.ActualEndTime = &now
	order.DurationActual = durationActual

	return nil
}

func (s *Service) cancel(ctx context.Context, order *domain.Order) error {
	if !order.CanBeCancelled() {
		s.logger.Warn("Cancel: order id=%d cannot be cancelled, status=%s", order.ID, order.Status)
		return ErrCannotCancel
	}

	reference := domain.CanceledReference(order.Reference)

	if err := s.orderRepo.Cancel(ctx, order.ID, reference); err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		s.logger.Error("Cancel: repository error for order id=%d: %v", order.ID, err)
		return fmt.Errorf("%w: cancel - repository error: %v", ErrInternal, err)
	}

	order.Status = domain.StatusCanceled
	order.Reference = reference

	s.logger.Info("Cancel: successfully cancelled order id=%d (%s)", order.ID, reference)
	s.notifier.OrderCanceled(order)

	return nil
}

func (s *Service) fetch(ctx context.Context, method string, id int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("%s: order id=%d not found", method, id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("%s: repository error for order id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return order, nil
}
