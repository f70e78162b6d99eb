package get_availability

import (
	"time"

	getAvailability "github.com/m04kA/SMC-FacilityService/internal/usecase/get_availability"
)

// SegmentResponse отрезок расписания с постоянной доступностью
type SegmentResponse struct {
	Start          string `json:"start"`
	End            string `json:"end"`
	AvailableUnits int    `json:"availableUnits"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	FacilityID    int64             `json:"facilityId"`
	CapacityUnits int               `json:"capacityUnits"`
	From          string            `json:"from"`
	To            string            `json:"to"`
	Segments      []SegmentResponse `json:"segments"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	segments := make([]SegmentResponse, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segments = append(segments, SegmentResponse{
			Start:          s.Start.Format(time.RFC3339),
			End:            s.End.Format(time.RFC3339),
			AvailableUnits: s.AvailableUnits,
		})
	}

	return &AvailabilityResponse{
		FacilityID:    resp.FacilityID,
		CapacityUnits: resp.CapacityUnits,
		From:          resp.From.Format(time.RFC3339),
		To:            resp.To.Format(time.RFC3339),
		Segments:      segments,
	}
}
