package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name     string
		paid     float64
		total    float64
		refunded bool
		want     PaymentStatus
	}{
		{"ничего не оплачено", 0, 1000, false, PaymentPending},
		{"частичная оплата", 400, 1000, false, PaymentPartial},
		{"полная оплата", 1000, 1000, false, PaymentPaid},
		{"переплата считается полной", 1200, 1000, false, PaymentPaid},
		{"нулевая стоимость всегда оплачена", 0, 0, false, PaymentPaid},
		{"возврат перекрывает остальное", 400, 1000, true, PaymentRefunded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivePaymentStatus(tt.paid, tt.total, tt.refunded))
		})
	}
}

func TestBalance(t *testing.T) {
	assert.Equal(t, 600.0, Balance(1000, 400))
	assert.Equal(t, 0.0, Balance(1000, 1000))
	// Переплата не даёт отрицательного остатка
	assert.Equal(t, 0.0, Balance(1000, 1200))
}

func TestClampPayment(t *testing.T) {
	assert.Equal(t, 300.0, ClampPayment(500, 300))
	assert.Equal(t, 250.0, ClampPayment(250, 300))
	assert.Equal(t, 300.0, ClampPayment(300, 300))
}
