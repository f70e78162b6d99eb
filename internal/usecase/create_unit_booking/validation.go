package create_unit_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityId must be positive", ErrInvalidInput)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if !domain.ValidInterval(req.StartTime, req.EndTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	if req.BookedUnits < domain.MinBookedUnits {
		return fmt.Errorf("%w: bookedUnits must be at least %d", ErrInvalidInput, domain.MinBookedUnits)
	}

	if req.AdvanceAmount < 0 {
		return fmt.Errorf("%w: advanceAmount must not be negative", ErrInvalidInput)
	}

	if req.PriceOverride != nil && *req.PriceOverride < 0 {
		return fmt.Errorf("%w: priceOverride must not be negative", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateStart проверяет, что бронирование не начинается в прошлом
func validateStart(start, now time.Time) error {
	if start.Before(now) {
		return ErrStartInPast
	}
	return nil
}
