package facilities

import (
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// FacilityResponse HTTP response model
type FacilityResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	CapacityUnits int     `json:"capacityUnits"`
	HourlyRate    float64 `json:"hourlyRate"`
	Active        bool    `json:"active"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ListResponse HTTP response model списка объектов
type ListResponse struct {
	Facilities []*FacilityResponse `json:"facilities"`
	Total      int                 `json:"total"`
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(f *domain.Facility) *FacilityResponse {
	return &FacilityResponse{
		ID:            f.ID,
		Name:          f.Name,
		CapacityUnits: f.CapacityUnits,
		HourlyRate:    f.HourlyRate,
		Active:        f.Active,
		CreatedAt:     f.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     f.UpdatedAt.Format(time.RFC3339),
	}
}
