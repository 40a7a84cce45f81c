package feed

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/lib/pq"
)

// channelName канал NOTIFY, в который триггер orders_notify_changed шлет события
const channelName = "orders_changed"

const (
	minReconnectInterval = time.Second
	maxReconnectInterval = 30 * time.Second
	pingInterval         = 90 * time.Second

	// subscriberBuffer размер буфера подписчика; медленный подписчик
	// теряет события, а не блокирует рассылку
	subscriberBuffer = 16
)

// Event событие изменения таблицы orders, полезная нагрузка NOTIFY
type Event struct {
	Op        string `json:"op"` // INSERT | UPDATE
	OrderID   int64  `json:"orderId"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Feed лента изменений заказов поверх Postgres LISTEN/NOTIFY.
// Каждое подключение SSE подписывается через Subscribe и получает события
// "что-то поменялось, перечитай данные" - без подиффовки полей.
type Feed struct {
	listener *pq.Listener
	log      Logger

	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// New создает ленту изменений на отдельном соединении с БД
func New(dsn string, log Logger) (*Feed, error) {
	f := &Feed{
		log:  log,
		subs: make(map[chan Event]struct{}),
	}

	f.listener = pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval,
		func(event pq.ListenerEventType, err error) {
			if err != nil {
				log.Error("feed: listener event %d: %v", event, err)
			}
		})

	if err := f.listener.Listen(channelName); err != nil {
		f.listener.Close()
		return nil, err
	}

	return f, nil
}

// Run читает уведомления и рассылает их подписчикам до отмены контекста
func (f *Feed) Run(ctx context.Context) {
	f.log.Info("feed: listening on channel %q", channelName)

	for {
		select {
		case <-ctx.Done():
			f.log.Info("feed: stopping")
			return

		case n := <-f.listener.Notify:
			// nil приходит после переустановки соединения
			if n == nil {
				continue
			}

			var event Event
			if err := json.Unmarshal([]byte(n.Extra), &event); err != nil {
				f.log.Warn("feed: failed to decode notification payload %q: %v", n.Extra, err)
				continue
			}
			f.broadcast(event)

		case <-time.After(pingInterval):
			if err := f.listener.Ping(); err != nil {
				f.log.Error("feed: ping failed: %v", err)
			}
		}
	}
}

// Subscribe регистрирует подписчика. Возвращенная функция снимает подписку
// и закрывает канал.
func (f *Feed) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	unsubscribe := func() {
		f.mu.Lock()
		if _, ok := f.subs[ch]; ok {
			delete(f.subs, ch)
			close(ch)
		}
		f.mu.Unlock()
	}

	return ch, unsubscribe
}

// Close закрывает соединение listener-а
func (f *Feed) Close() error {
	return f.listener.Close()
}

func (f *Feed) broadcast(event Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for ch := range f.subs {
		select {
		case ch <- event:
		default:
			// Подписчик не успевает - событие теряется, подписчик
			// перечитает состояние по следующему событию
		}
	}
}
