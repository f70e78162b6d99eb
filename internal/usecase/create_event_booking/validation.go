package create_event_booking

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

	if req.EventName == "" {
		return fmt.Errorf("%w: eventName is required", ErrInvalidInput)
	}

	if len(req.EventName) > domain.MaxEventNameLength {
		return fmt.Errorf("%w: eventName exceeds %d characters", ErrInvalidInput, domain.MaxEventNameLength)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if len(req.FacilityIDs) == 0 {
		return fmt.Errorf("%w: facilityIds must not be empty", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(req.FacilityIDs))
	for _, id := range req.FacilityIDs {
		if id <= 0 {
			return fmt.Errorf("%w: facilityIds must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate facility id %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if !domain.ValidInterval(req.StartTime, req.EndTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
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

// validateStart проверяет, что событие не начинается в прошлом
func validateStart(start, now time.Time) error {
	if start.Before(now) {
		return ErrStartInPast
	}
	return nil
}
