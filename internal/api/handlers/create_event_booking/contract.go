package create_event_booking

import (
	"context"

	createEventBooking "github.com/m04kA/SMC-FacilityService/internal/usecase/create_event_booking"
)

type CreateEventBookingUseCase interface {
	Execute(ctx context.Context, req *createEventBooking.Request) (*createEventBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
