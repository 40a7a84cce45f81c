package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SCM-OrderService/pkg/types"
)

// ErrInvalidWindow возвращается, когда конец рабочего окна не позже начала.
// Окна через полночь для новых заказов не принимаются.
var ErrInvalidWindow = errors.New("domain: end time must be after start time")

// Window кандидат рабочего окна: единица техники и интервал в пределах одних суток
type Window struct {
	Unit      UnitType
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Validate проверяет корректность окна: формат времени и end строго после start
func (w Window) Validate() error {
	if err := w.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	if err := w.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}

	start, _ := w.StartTime.ToMinutes()
	end, _ := w.EndTime.ToMinutes()
	if end <= start {
		return ErrInvalidWindow
	}

	return nil
}

// FindConflict ищет среди существующих заказов первый, чье рабочее окно
// пересекается с кандидатом. Чистая функция над снапшотом заказов, без I/O.
//
// Учитываются только заказы той же техники на ту же дату в блокирующем
// статусе (Requested, On Progress). Pending не участвует: у него нет
// рабочего окна. Пересечение полуинтервалов [s1,e1) и [s2,e2):
// s1 < e2 && s2 < e1 - стыкующиеся границы конфликтом не считаются.
//
// Кандидат с нечитаемым временем отклоняется с ErrInvalidWindow, а не
// пропускается как свободный. Возвращает nil, nil если конфликтов нет.
// Снапшот может устареть к моменту записи, поэтому вызывающий код
// повторяет проверку внутри транзакции.
func FindConflict(w Window, orders []*Order) (*Order, error) {
	candStart, err := w.StartTime.ToMinutes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	candEnd, err := w.EndTime.ToMinutes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}

	for _, existing := range orders {
		if !existing.IsBlocking() || !existing.HasSchedule() {
			continue
		}
		if existing.Unit != w.Unit || !sameDay(*existing.Date, w.Date) {
			continue
		}

		existStart, err := existing.StartTime.ToMinutes()
		if err != nil {
			continue
		}
		existEnd, err := existing.EndTime.ToMinutes()
		if err != nil {
			continue
		}

		if candStart < existEnd && existStart < candEnd {
			return existing, nil
		}
	}

	return nil, nil
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
