package notifier

import "context"

// Sender интерфейс отправки сообщения во внешний канал (WhatsApp шлюз)
type Sender interface {
	Send(ctx context.Context, target, message string) error
}

// NopSender заглушка для выключенного канала уведомлений
type NopSender struct{}

// Send ничего не отправляет
func (NopSender) Send(_ context.Context, _, _ string) error {
	return nil
}

// MetricsRecorder интерфейс записи метрик доставки уведомлений
type MetricsRecorder interface {
	IncNotification(event string, delivered bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
