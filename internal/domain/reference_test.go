package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatReference(t *testing.T) {
	assert.Equal(t, "REQ-00007", FormatReference(7))
	assert.Equal(t, "REQ-00123", FormatReference(123))
	assert.Equal(t, "REQ-123456", FormatReference(123456))
}

func TestBaseReference(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"без префиксов", "REQ-00007", "REQ-00007"},
		{"pending", "PENDING-REQ-00007", "REQ-00007"},
		{"canceled", "CANCELED-REQ-00007", "REQ-00007"},
		{"стопка префиксов", "CANCELED-PENDING-REQ-00007", "REQ-00007"},
		{"двойной pending", "PENDING-PENDING-REQ-00012", "REQ-00012"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseReference(tt.ref))
		})
	}
}

func TestReferenceNumber(t *testing.T) {
	assert.Equal(t, int64(7), ReferenceNumber("REQ-00007"))
	assert.Equal(t, int64(7), ReferenceNumber("PENDING-REQ-00007"))
	assert.Equal(t, int64(42), ReferenceNumber("CANCELED-REQ-42"))
	assert.Equal(t, int64(0), ReferenceNumber("ORD-00007"))
	assert.Equal(t, int64(0), ReferenceNumber(""))
}

func TestPendingReference(t *testing.T) {
	assert.Equal(t, "PENDING-REQ-00007", PendingReference("REQ-00007"))
	// Повторный перевод в Pending не наращивает стопку префиксов
	assert.Equal(t, "PENDING-REQ-00007", PendingReference("PENDING-REQ-00007"))
}

func TestCanceledReference(t *testing.T) {
	assert.Equal(t, "CANCELED-REQ-00007", CanceledReference("REQ-00007"))
	// Отмена заказа в Pending срезает PENDING- перед добавлением CANCELED-
	assert.Equal(t, "CANCELED-REQ-00007", CanceledReference("PENDING-REQ-00007"))
}
