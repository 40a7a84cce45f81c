package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SCM-OrderService/pkg/types"
)

const minutesPerDay = 24 * 60

// PlanDuration вычисляет плановую длительность "HH:MM" между start и end.
// Окно, уходящее за полночь (end <= start), трактуется как переход на
// следующие сутки: 22:00-02:00 дает 04:00.
func PlanDuration(start, end types.TimeString) (string, error) {
	startMin, err := start.ToMinutes()
	if err != nil {
		return "", err
	}
	endMin, err := end.ToMinutes()
	if err != nil {
		return "", err
	}

	diff := endMin - startMin
	if diff <= 0 {
		diff += minutesPerDay
	}

	return formatDuration(diff), nil
}

// ActualDuration вычисляет фактическую длительность "HH:MM" между отметками
// начала и завершения работ. Если заказ закрыли без перевода в On Progress
// (start == nil), возвращается ZeroDuration.
func ActualDuration(start, end *time.Time) string {
	if start == nil || end == nil {
		return ZeroDuration
	}

	diff := end.Sub(*start)
	if diff < 0 {
		return ZeroDuration
	}

	return formatDuration(int(diff.Minutes()))
}

func formatDuration(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
