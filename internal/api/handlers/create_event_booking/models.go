package create_event_booking

import (
	"time"

	createEventBooking "github.com/m04kA/SMC-FacilityService/internal/usecase/create_event_booking"
)

// CreateEventBookingRequest HTTP request model
type CreateEventBookingRequest struct {
	EventName     string   `json:"eventName"`
	CustomerName  string   `json:"customerName"`
	CustomerPhone *string  `json:"customerPhone,omitempty"`
	FacilityIDs   []int64  `json:"facilityIds"`
	StartTime     string   `json:"startTime"` // RFC3339
	EndTime       string   `json:"endTime"`   // RFC3339
	AdvanceAmount float64  `json:"advanceAmount"`
	PriceOverride *float64 `json:"priceOverride,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

// EventBookingResponse HTTP response model
type EventBookingResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	EventName     string  `json:"eventName"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	FacilityIDs   []int64 `json:"facilityIds"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
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
func (r *CreateEventBookingRequest) ToUseCaseRequest(userID int64) (*createEventBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createEventBooking.Request{
		UserID:        userID,
		EventName:     r.EventName,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		FacilityIDs:   r.FacilityIDs,
		StartTime:     start.UTC(),
		EndTime:       end.UTC(),
		AdvanceAmount: r.AdvanceAmount,
		PriceOverride: r.PriceOverride,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createEventBooking.Response) *EventBookingResponse {
	return &EventBookingResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		EventName:     resp.EventName,
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		FacilityIDs:   resp.FacilityIDs,
		StartTime:     resp.StartTime.Format(time.RFC3339),
		EndTime:       resp.EndTime.Format(time.RFC3339),
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
