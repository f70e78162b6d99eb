package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-FacilityService/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewStart       string  `json:"newStart"`                 // RFC3339
	NewEnd         string  `json:"newEnd"`                   // RFC3339
	NewFacilityIDs []int64 `json:"newFacilityIds,omitempty"` // Только для событий
	Reason         *string `json:"reason,omitempty"`
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	Kind            string  `json:"kind"`
	BookingID       int64   `json:"bookingId"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	FacilityIDs     []int64 `json:"facilityIds,omitempty"`
	RemindAt        string  `json:"remindAt"`
	RescheduleCount int     `json:"rescheduleCount"`
	Status          string  `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(kind domain.BookingKind, bookingID, userID int64) (*rescheduleBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.NewStart)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.NewEnd)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		Kind:           kind,
		BookingID:      bookingID,
		UserID:         userID,
		NewStart:       start.UTC(),
		NewEnd:         end.UTC(),
		NewFacilityIDs: r.NewFacilityIDs,
		Reason:         r.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		Kind:            string(resp.Kind),
		BookingID:       resp.BookingID,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		FacilityIDs:     resp.FacilityIDs,
		RemindAt:        resp.RemindAt.Format(time.RFC3339),
		RescheduleCount: resp.RescheduleCount,
		Status:          string(resp.Status),
	}
}
