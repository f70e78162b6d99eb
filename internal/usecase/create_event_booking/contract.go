package create_event_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/integrations/membership"
)

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Facility, error)
}

// EventBookingRepository интерфейс репозитория событийных бронирований
type EventBookingRepository interface {
	Create(ctx context.Context, booking *domain.EventBooking) (*domain.EventBooking, error)
}

// AvailabilityChecker интерфейс проверки эксклюзивной доступности объектов
type AvailabilityChecker interface {
	CheckExclusive(ctx context.Context, facilities []*domain.Facility, start, end time.Time, excludeEventID *int64) error
}

// MembershipClient интерфейс клиента MembershipService
type MembershipClient interface {
	GetDiscountWithGracefulDegradation(ctx context.Context, userID int64) (*membership.Discount, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует события жизненного цикла бронирований
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
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
