package create_unit_booking

import (
	"time"

	createUnitBooking "github.com/m04kA/SMC-FacilityService/internal/usecase/create_unit_booking"
)

// CreateUnitBookingRequest HTTP request model
type CreateUnitBookingRequest struct {
	FacilityID    int64    `json:"facilityId"`
	CustomerName  string   `json:"customerName"`
	CustomerPhone *string  `json:"customerPhone,omitempty"`
	StartTime     string   `json:"startTime"` // RFC3339, например "2026-09-10T10:00:00Z"
	EndTime       string   `json:"endTime"`   // RFC3339
	BookedUnits   int      `json:"bookedUnits"`
	AdvanceAmount float64  `json:"advanceAmount"`
	PriceOverride *float64 `json:"priceOverride,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

// UnitBookingResponse HTTP response model
type UnitBookingResponse struct {
	ID            int64   `json:"id"`
	FacilityID    int64   `json:"facilityId"`
	UserID        int64   `json:"userId"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	BookedUnits   int     `json:"bookedUnits"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	TotalAmount   float64 `json:"totalAmount"`
	AdvanceAmount float64 `json:"advanceAmount"`
	PaidAmount    float64 `json:"paidAmount"`
	BalanceAmount float64 `json:"balanceAmount"`
	RemindAt      string  `json:"remindAt"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateUnitBookingRequest) ToUseCaseRequest(userID int64) (*createUnitBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createUnitBooking.Request{
		UserID:        userID,
		FacilityID:    r.FacilityID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		StartTime:     start.UTC(),
		EndTime:       end.UTC(),
		BookedUnits:   r.BookedUnits,
		AdvanceAmount: r.AdvanceAmount,
		PriceOverride: r.PriceOverride,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createUnitBooking.Response) *UnitBookingResponse {
	return &UnitBookingResponse{
		ID:            resp.ID,
		FacilityID:    resp.FacilityID,
		UserID:        resp.UserID,
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		StartTime:     resp.StartTime.Format(time.RFC3339),
		EndTime:       resp.EndTime.Format(time.RFC3339),
		BookedUnits:   resp.BookedUnits,
		Status:        string(resp.Status),
		PaymentStatus: string(resp.PaymentStatus),
		TotalAmount:   resp.TotalAmount,
		AdvanceAmount: resp.AdvanceAmount,
		PaidAmount:    resp.PaidAmount,
		BalanceAmount: resp.BalanceAmount,
		RemindAt:      resp.RemindAt.Format(time.RFC3339),
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
