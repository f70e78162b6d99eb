package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/service/availability"
)

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Facility, error)
}

// UnitBookingRepository интерфейс репозитория юнитных бронирований
type UnitBookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.UnitBooking, error)
	Reschedule(ctx context.Context, id int64, start, end, remindAt time.Time) error
}

// EventBookingRepository интерфейс репозитория событийных бронирований
type EventBookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.EventBooking, error)
	Reschedule(ctx context.Context, id int64, start, end, remindAt time.Time) error
	ReplaceFacilities(ctx context.Context, id int64, facilityIDs []int64) error
}

// RescheduleLogRepository интерфейс репозитория истории переносов
type RescheduleLogRepository interface {
	Append(ctx context.Context, entry *domain.RescheduleEntry) (*domain.RescheduleEntry, error)
}

// AvailabilityChecker интерфейс проверки занятости объектов
type AvailabilityChecker interface {
	CheckUnitCapacity(ctx context.Context, facility *domain.Facility, start, end time.Time, requestedUnits int, excludeUnitID *int64) (*availability.UnitCapacityResult, error)
	CheckExclusive(ctx context.Context, facilities []*domain.Facility, start, end time.Time, excludeEventID *int64) error
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
