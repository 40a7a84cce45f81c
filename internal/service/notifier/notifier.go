package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SCM-OrderService/internal/domain"
)

// EventKind вид события жизненного цикла, по которому уходит уведомление
type EventKind string

const (
	EventOrderCreated  EventKind = "order_created"
	EventOrderChanged  EventKind = "order_changed"
	EventOrderCanceled EventKind = "order_canceled"
)

const (
	// queueSize размер очереди событий; при переполнении события
	// отбрасываются с предупреждением в лог - доставка best-effort
	queueSize = 64

	// sendTimeout таймаут одной попытки доставки
	sendTimeout = 15 * time.Second
)

type event struct {
	kind  EventKind
	order domain.Order
}

// Notifier асинхронный диспетчер уведомлений в WhatsApp группу.
// События жизненного цикла заказа ставятся в очередь и доставляются
// фоновым воркером. Сбой доставки логируется и не влияет на основную
// операцию - запись в БД к этому моменту уже зафиксирована.
type Notifier struct {
	sender  Sender
	target  string
	log     Logger
	metrics MetricsRecorder

	events chan event
	wg     sync.WaitGroup

	stopOnce sync.Once
}

// New создает диспетчер уведомлений. metrics может быть nil,
// если метрики выключены.
func New(sender Sender, target string, log Logger, metrics MetricsRecorder) *Notifier {
	return &Notifier{
		sender:  sender,
		target:  target,
		log:     log,
		metrics: metrics,
		events:  make(chan event, queueSize),
	}
}

// Start запускает фонового воркера доставки
func (n *Notifier) Start(ctx context.Context) {
	n.wg.Add(1)
	go n.worker(ctx)
}

// Stop закрывает очередь и дожидается доставки уже принятых событий
func (n *Notifier) Stop() {
	n.stopOnce.Do(func() {
		close(n.events)
	})
	n.wg.Wait()
}

// OrderCreated ставит в очередь уведомление о новом заказе
func (n *Notifier) OrderCreated(order *domain.Order) {
	n.enqueue(EventOrderCreated, order)
}

// OrderChanged ставит в очередь уведомление об изменении заказа
func (n *Notifier) OrderChanged(order *domain.Order) {
	n.enqueue(EventOrderChanged, order)
}

// OrderCanceled ставит в очередь уведомление об отмене заказа
func (n *Notifier) OrderCanceled(order *domain.Order) {
	n.enqueue(EventOrderCanceled, order)
}

func (n *Notifier) enqueue(kind EventKind, order *domain.Order) {
	if order == nil {
		return
	}

	select {
	case n.events <- event{kind: kind, order: *order}:
	default:
		n.log.Warn("notifier: queue full, dropping %s for %s", kind, order.Reference)
		n.record(kind, false)
	}
}

func (n *Notifier) worker(ctx context.Context) {
	defer n.wg.Done()

	for {
		select {
		case <-ctx.Done():
			n.log.Info("notifier: worker stopping")
			return
		case ev, ok := <-n.events:
			if !ok {
				return
			}
			n.deliver(ev)
		}
	}
}

func (n *Notifier) deliver(ev event) {
	message := buildMessage(ev.kind, &ev.order)
	if message == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := n.sender.Send(ctx, n.target, message); err != nil {
		n.log.Error("notifier: failed to deliver %s for %s: %v", ev.kind, ev.order.Reference, err)
		n.record(ev.kind, false)
		return
	}

	n.log.Info("notifier: delivered %s for %s", ev.kind, ev.order.Reference)
	n.record(ev.kind, true)
}

func (n *Notifier) record(kind EventKind, delivered bool) {
	if n.metrics != nil {
		n.metrics.IncNotification(string(kind), delivered)
	}
}
