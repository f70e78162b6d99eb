package update_booking_status

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/service/bookings/models"
)

type BookingsService interface {
	UpdateStatus(ctx context.Context, kind domain.BookingKind, id int64, status *domain.BookingStatus, paymentStatus *domain.PaymentStatus) (*models.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
