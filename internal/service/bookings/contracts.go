package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// UnitBookingRepo интерфейс репозитория повременных бронирований
type UnitBookingRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.UnitBooking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.UnitBooking, error)
	UpdateStatus(ctx context.Context, id int64, status *domain.BookingStatus, paymentStatus *domain.PaymentStatus) error
	UpdatePayment(ctx context.Context, id int64, paidAmount, balanceAmount float64, paymentStatus domain.PaymentStatus, status *domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, charge, refund float64, paymentStatus domain.PaymentStatus, reason *string, cancelledAt time.Time) error
}

// EventBookingRepo интерфейс репозитория событийных бронирований
type EventBookingRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.EventBooking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.EventBooking, error)
	UpdateStatus(ctx context.Context, id int64, status *domain.BookingStatus, paymentStatus *domain.PaymentStatus) error
	UpdatePayment(ctx context.Context, id int64, paidAmount, balanceAmount float64, paymentStatus domain.PaymentStatus, status *domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, charge, refund float64, paymentStatus domain.PaymentStatus, reason *string, cancelledAt time.Time) error
}

// RescheduleLogRepo интерфейс репозитория истории переносов
type RescheduleLogRepo interface {
	ListByBooking(ctx context.Context, kind domain.BookingKind, bookingID int64) ([]*domain.RescheduleEntry, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider отдает текущее время, подменяется в тестах
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// EventPublisher публикует события жизненного цикла бронирований
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
