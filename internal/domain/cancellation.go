package domain

import (
	"time"

	"github.com/m04kA/SMC-FacilityService/pkg/money"
)

// CancellationTier ступень тарифа отмены: если до начала бронирования
// осталось меньше NoticeLessThan, взимается ChargePercent от стоимости
type CancellationTier struct {
	NoticeLessThan time.Duration
	ChargePercent  float64
}

// CancellationPolicy тариф отмены. Ступени упорядочены по возрастанию
// NoticeLessThan; отмена раньше самой большой ступени бесплатна.
// Значения задаются конфигурацией, а не зашиты в алгоритм.
type CancellationPolicy struct {
	Tiers []CancellationTier
}

// DefaultCancellationPolicy стандартный тариф:
// меньше 2 часов до начала — 100%, меньше 24 часов — 50%, иначе 0%
func DefaultCancellationPolicy() CancellationPolicy {
	return CancellationPolicy{
		Tiers: []CancellationTier{
			{NoticeLessThan: 2 * time.Hour, ChargePercent: 100},
			{NoticeLessThan: 24 * time.Hour, ChargePercent: 50},
		},
	}
}

// ChargePercent возвращает процент удержания для отмены в момент now
// бронирования, начинающегося в start
func (p CancellationPolicy) ChargePercent(now, start time.Time) float64 {
	notice := start.Sub(now)
	for _, tier := range p.Tiers {
		if notice < tier.NoticeLessThan {
			return tier.ChargePercent
		}
	}
	return 0
}

// CancellationOutcome результат применения тарифа отмены
type CancellationOutcome struct {
	ChargePercent      float64
	CancellationCharge float64
	RefundAmount       float64
	PaymentStatus      PaymentStatus
}

// Apply вычисляет удержание и возврат для отмены бронирования.
// Удержание не превышает общую стоимость, возврат — оплаченную сумму.
// Статус refunded выставляется только при положительном возврате,
// иначе платёжный статус выводится заново из сумм.
func (p CancellationPolicy) Apply(now, start time.Time, totalAmount, paidAmount float64) CancellationOutcome {
	pct := p.ChargePercent(now, start)
	charge := money.Round2(totalAmount * pct / 100)
	refund := money.Round2(money.ClampNonNegative(paidAmount - charge))

	status := DerivePaymentStatus(paidAmount, totalAmount, false)
	if refund > 0 {
		status = PaymentRefunded
	}

	return CancellationOutcome{
		ChargePercent:      pct,
		CancellationCharge: charge,
		RefundAmount:       refund,
		PaymentStatus:      status,
	}
}
