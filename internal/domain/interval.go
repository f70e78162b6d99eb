package domain

import "time"

// Интервалы бронирований полуоткрытые: [start, end).
// Бронирование, заканчивающееся ровно в момент начала другого,
// пересечением не считается.

// Overlaps reports whether half-open intervals [s1,e1) and [s2,e2) overlap
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// ValidInterval reports whether the interval is well-formed (end > start)
func ValidInterval(start, end time.Time) bool {
	return !start.IsZero() && !end.IsZero() && end.After(start)
}

// IntervalHours returns the interval duration in (fractional) hours
func IntervalHours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}
