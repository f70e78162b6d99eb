package completion

import (
	"context"
	"time"
)

// UnitBookingRepo интерфейс репозитория юнитных бронирований
type UnitBookingRepo interface {
	CompleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// EventBookingRepo интерфейс репозитория событийных бронирований
type EventBookingRepo interface {
	CompleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
