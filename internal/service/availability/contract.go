package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// UnitBookingRepo интерфейс репозитория повременных бронирований
type UnitBookingRepo interface {
	ListActiveOverlapping(ctx context.Context, facilityID int64, start, end time.Time, excludeID *int64) ([]*domain.UnitBooking, error)
}

// EventBookingRepo интерфейс репозитория событийных бронирований
type EventBookingRepo interface {
	ListActiveOverlapping(ctx context.Context, facilityIDs []int64, start, end time.Time, excludeID *int64) ([]*domain.EventBooking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
