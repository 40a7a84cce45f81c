package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SCM-OrderService/pkg/ptr"
	"github.com/m04kA/SCM-OrderService/pkg/types"
)

func makeOrder(unit UnitType, date time.Time, start, end string, status OrderStatus) *Order {
	return &Order{
		Reference: "REQ-00001",
		Unit:      unit,
		Date:      &date,
		StartTime: ptr.Ptr(types.TimeString(start)),
		EndTime:   ptr.Ptr(types.TimeString(end)),
		Status:    status,
	}
}

func TestWindowValidate(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("корректное окно", func(t *testing.T) {
		w := Window{Unit: UnitCrane, Date: date, StartTime: "08:00", EndTime: "12:00"}
		require.NoError(t, w.Validate())
	})

	t.Run("конец раньше начала", func(t *testing.T) {
		w := Window{Unit: UnitCrane, Date: date, StartTime: "12:00", EndTime: "08:00"}
		assert.ErrorIs(t, w.Validate(), ErrInvalidWindow)
	})

	t.Run("конец равен началу", func(t *testing.T) {
		w := Window{Unit: UnitCrane, Date: date, StartTime: "08:00", EndTime: "08:00"}
		assert.ErrorIs(t, w.Validate(), ErrInvalidWindow)
	})

	t.Run("битый формат времени", func(t *testing.T) {
		w := Window{Unit: UnitCrane, Date: date, StartTime: "8am", EndTime: "12:00"}
		assert.ErrorIs(t, w.Validate(), ErrInvalidWindow)
	})
}

func TestFindConflict(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	existing := []*Order{
		makeOrder(UnitCrane, date, "08:00", "12:00", StatusRequested),
	}

	t.Run("пересечение внутри окна", func(t *testing.T) {
		w := Window{Unit: UnitCrane, Date: date, StartTime: "10:00", EndTime: "14:00"}
		conflict, err := FindConflict(w, existing)
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, "REQ-00001", conflict.Reference)
	})

	t.Run("стыкующиеся границы не конфликтуют", func(t *testing.T) {
		w := Window{Unit: UnitCrane, Date: date, StartTime: "12:00", EndTime: "14:00"}
		conflict, err := FindConflict(w, existing)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("другая техника", func(t *testing.T) {
		w := Window{Unit: UnitPicker, Date: date, StartTime: "10:00", EndTime: "14:00"}
		conflict, err := FindConflict(w, existing)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("другая дата", func(t *testing.T) {
		w := Window{Unit: UnitCrane, Date: date.AddDate(0, 0, 1), StartTime: "10:00", EndTime: "14:00"}
		conflict, err := FindConflict(w, existing)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("кандидат целиком накрывает окно", func(t *testing.T) {
		w := Window{Unit: UnitCrane, Date: date, StartTime: "07:00", EndTime: "13:00"}
		conflict, err := FindConflict(w, existing)
		require.NoError(t, err)
		assert.NotNil(t, conflict)
	})

	t.Run("нечитаемое время кандидата возвращает ошибку", func(t *testing.T) {
		w := Window{Unit: UnitCrane, Date: date, StartTime: "8am", EndTime: "12:00"}
		conflict, err := FindConflict(w, existing)
		assert.ErrorIs(t, err, ErrInvalidWindow)
		assert.Nil(t, conflict)
	})
}

func TestFindConflict_StatusFiltering(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	w := Window{Unit: UnitCrane, Date: date, StartTime: "09:00", EndTime: "11:00"}

	t.Run("Closed не блокирует", func(t *testing.T) {
		orders := []*Order{makeOrder(UnitCrane, date, "08:00", "12:00", StatusClosed)}
		conflict, err := FindConflict(w, orders)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("Canceled не блокирует", func(t *testing.T) {
		orders := []*Order{makeOrder(UnitCrane, date, "08:00", "12:00", StatusCanceled)}
		conflict, err := FindConflict(w, orders)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("On Progress блокирует", func(t *testing.T) {
		orders := []*Order{makeOrder(UnitCrane, date, "08:00", "12:00", StatusOnProgress)}
		conflict, err := FindConflict(w, orders)
		require.NoError(t, err)
		assert.NotNil(t, conflict)
	})

	t.Run("Pending без расписания не участвует", func(t *testing.T) {
		pending := &Order{
			Reference: "PENDING-REQ-00002",
			Unit:      UnitCrane,
			Status:    StatusPending,
		}
		conflict, err := FindConflict(w, []*Order{pending})
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})
}

func TestFindConflict_SequentialAcceptanceProperty(t *testing.T) {
	// Два последовательно принятых заказа одной техники на одну дату
	// не должны пересекаться полуинтервалами
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	first := makeOrder(UnitCrane, date, "08:00", "12:00", StatusRequested)
	second := Window{Unit: UnitCrane, Date: date, StartTime: "12:00", EndTime: "14:00"}

	conflict, err := FindConflict(second, []*Order{first})
	require.NoError(t, err)
	require.Nil(t, conflict)

	accepted := makeOrder(UnitCrane, date, "12:00", "14:00", StatusRequested)

	aStart, _ := first.StartTime.ToMinutes()
	aEnd, _ := first.EndTime.ToMinutes()
	bStart, _ := accepted.StartTime.ToMinutes()
	bEnd, _ := accepted.EndTime.ToMinutes()
	assert.False(t, aStart < bEnd && bStart < aEnd)
}
