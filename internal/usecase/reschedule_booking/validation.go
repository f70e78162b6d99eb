package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Kind != domain.KindUnit && req.Kind != domain.KindEvent {
		return fmt.Errorf("%w: unknown booking kind %q", ErrInvalidInput, req.Kind)
	}

	if !domain.ValidInterval(req.NewStart, req.NewEnd) {
		return fmt.Errorf("%w: newEnd must be after newStart", ErrInvalidInput)
	}

	if req.NewFacilityIDs != nil {
		if req.Kind != domain.KindEvent {
			return fmt.Errorf("%w: newFacilityIds is only allowed for event bookings", ErrInvalidInput)
		}
		if len(req.NewFacilityIDs) == 0 {
			return fmt.Errorf("%w: newFacilityIds must not be empty", ErrInvalidInput)
		}
		seen := make(map[int64]struct{}, len(req.NewFacilityIDs))
		for _, id := range req.NewFacilityIDs {
			if id <= 0 {
				return fmt.Errorf("%w: newFacilityIds must be positive", ErrInvalidInput)
			}
			if _, ok := seen[id]; ok {
				return fmt.Errorf("%w: duplicate facility id %d", ErrInvalidInput, id)
			}
			seen[id] = struct{}{}
		}
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return nil
}

// validateStart проверяет, что новый интервал не начинается в прошлом
func validateStart(start, now time.Time) error {
	if start.Before(now) {
		return ErrStartInPast
	}
	return nil
}
