package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// UnitBookingRepository интерфейс репозитория юнитных бронирований
type UnitBookingRepository interface {
	ListActiveOverlapping(ctx context.Context, facilityID int64, start, end time.Time, excludeID *int64) ([]*domain.UnitBooking, error)
}

// EventBookingRepository интерфейс репозитория событийных бронирований
type EventBookingRepository interface {
	ListActiveOverlapping(ctx context.Context, facilityIDs []int64, start, end time.Time, excludeID *int64) ([]*domain.EventBooking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
