package create_unit_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/integrations/membership"
	"github.com/m04kA/SMC-FacilityService/internal/service/availability"
)

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// UnitBookingRepository интерфейс репозитория юнитных бронирований
type UnitBookingRepository interface {
	Create(ctx context.Context, booking *domain.UnitBooking) (*domain.UnitBooking, error)
}

// AvailabilityChecker интерфейс проверки занятости объекта
type AvailabilityChecker interface {
	CheckUnitCapacity(ctx context.Context, facility *domain.Facility, start, end time.Time, requestedUnits int, excludeUnitID *int64) (*availability.UnitCapacityResult, error)
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
