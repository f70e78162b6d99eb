package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/service/bookings/models"
)

type BookingsService interface {
	Cancel(ctx context.Context, kind domain.BookingKind, id int64, reason *string) (*models.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
