package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SCM-OrderService/pkg/types"
)

func TestPlanDuration(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"рабочий день", "08:00", "17:00", "09:00"},
		{"через полночь", "22:00", "02:00", "04:00"},
		{"полчаса", "10:00", "10:30", "00:30"},
		{"почти сутки", "08:00", "07:00", "23:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlanDuration(types.TimeString(tt.start), types.TimeString(tt.end))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanDuration_InvalidTime(t *testing.T) {
	_, err := PlanDuration(types.TimeString("25:00"), types.TimeString("08:00"))
	assert.Error(t, err)
}

func TestActualDuration(t *testing.T) {
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	t.Run("полтора часа", func(t *testing.T) {
		end := start.Add(90 * time.Minute)
		assert.Equal(t, "01:30", ActualDuration(&start, &end))
	})

	t.Run("закрыт без On Progress", func(t *testing.T) {
		end := start.Add(time.Hour)
		assert.Equal(t, ZeroDuration, ActualDuration(nil, &end))
	})

	t.Run("нет отметки завершения", func(t *testing.T) {
		assert.Equal(t, ZeroDuration, ActualDuration(&start, nil))
	})

	t.Run("завершение раньше начала", func(t *testing.T) {
		end := start.Add(-time.Hour)
		assert.Equal(t, ZeroDuration, ActualDuration(&start, &end))
	})
}
