package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const timeLayout = "15:04"

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

	// ErrUnsupportedScanType возвращается при попытке сканировать неподдерживаемый тип из БД
	ErrUnsupportedScanType = errors.New("unsupported scan type for TimeString")
)

// TimeString время в формате "HH:MM" (минутная точность, без даты и таймзоны).
// Используется для границ рабочих окон заказов и хранится в БД как текст.
type TimeString string

// NewTimeString создает TimeString из time.Time (часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала суток.
// Значения за пределами суток нормализуются по модулю 24 часов.
func NewTimeStringFromMinutes(minutes int) TimeString {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат "HH:MM"
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// ToMinutes возвращает количество минут с начала суток
func (t TimeString) ToMinutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед.
// Переход через полночь нормализуется (23:50 + 20 = 00:10).
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.ToMinutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes), nil
}

// IsBefore возвращает true, если t раньше other в пределах одних суток
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.ToMinutes()
	b, errB := other.ToMinutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t позже other в пределах одних суток
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.ToMinutes()
	b, errB := other.ToMinutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД.
// Поддерживает text/varchar колонки и time-колонки Postgres.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedScanType, src)
	}
}

func (t *TimeString) scanString(s string) error {
	if s == "" {
		*t = ""
		return nil
	}
	// Postgres может вернуть время с секундами ("08:00:00")
	if len(s) > 5 {
		s = s[:5]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}
