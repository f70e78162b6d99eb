package create_unit_booking

import (
	"context"

	createUnitBooking "github.com/m04kA/SMC-FacilityService/internal/usecase/create_unit_booking"
)

type CreateUnitBookingUseCase interface {
	Execute(ctx context.Context, req *createUnitBooking.Request) (*createUnitBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
