package domain

import "github.com/m04kA/SMC-FacilityService/pkg/money"

// DerivePaymentStatus выводит платёжный статус из сумм.
// Чистая функция, вызывается после каждого изменения сумм.
func DerivePaymentStatus(paidAmount, totalAmount float64, refunded bool) PaymentStatus {
	switch {
	case refunded:
		return PaymentRefunded
	case totalAmount <= 0:
		return PaymentPaid
	case paidAmount <= 0:
		return PaymentPending
	case paidAmount >= totalAmount:
		return PaymentPaid
	default:
		return PaymentPartial
	}
}

// Balance вычисляет остаток к оплате: max(0, total - paid)
func Balance(totalAmount, paidAmount float64) float64 {
	return money.Round2(money.ClampNonNegative(totalAmount - paidAmount))
}

// ClampPayment ограничивает оплаченную сумму общей стоимостью.
// Переплата не хранится: платёж на 500 при стоимости 300 даёт paid = 300.
func ClampPayment(paidAmount, totalAmount float64) float64 {
	if paidAmount > totalAmount {
		return totalAmount
	}
	return paidAmount
}
