package domain

import (
	"time"

	"github.com/m04kA/SMC-FacilityService/pkg/money"
)

// Автоматическое ценообразование: часы × ставка × юниты.
// Изменение ставки объекта не пересчитывает уже созданные бронирования.

// UnitBookingAmount стоимость юнитного бронирования
func UnitBookingAmount(hourlyRate float64, start, end time.Time, units int) float64 {
	return money.Round2(IntervalHours(start, end) * hourlyRate * float64(units))
}

// EventBookingAmount стоимость событийного бронирования:
// сумма почасовых ставок всех объектов × длительность
func EventBookingAmount(facilities []*Facility, start, end time.Time) float64 {
	var rateSum float64
	for _, f := range facilities {
		rateSum += f.HourlyRate
	}
	return money.Round2(IntervalHours(start, end) * rateSum)
}

// ApplyDiscount применяет процентную скидку к сумме.
// Скидка применяется мультипликативно один раз при создании,
// никогда ретроактивно.
func ApplyDiscount(amount, discountPercent float64) float64 {
	if discountPercent <= 0 {
		return money.Round2(amount)
	}
	if discountPercent > 100 {
		discountPercent = 100
	}
	return money.Round2(amount * (100 - discountPercent) / 100)
}
