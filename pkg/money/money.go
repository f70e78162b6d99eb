// Package money содержит утилиты для работы с денежными суммами.
// Все суммы в системе хранятся с точностью до двух знаков после запятой.
package money

import "math"

// Round2 округляет сумму до двух знаков после запятой.
// Используется округление "half away from zero" (стандартное денежное):
// 10.005 -> 10.01, -10.005 -> -10.01.
func Round2(v float64) float64 {
	return math.Copysign(math.Floor(math.Abs(v)*100+0.5)/100, v)
}

// ClampNonNegative возвращает 0 для отрицательных сумм
func ClampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
