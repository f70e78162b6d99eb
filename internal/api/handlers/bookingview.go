package handlers

import (
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/service/bookings/models"
)

// BookingResponse HTTP-представление бронирования любого вида.
// Поля, специфичные для одного вида, опциональны: facilityId и bookedUnits
// заполняются только для юнитных бронирований, facilityIds и eventName
// только для событийных.
type BookingResponse struct {
	Kind          string   `json:"kind"`
	ID            int64    `json:"id"`
	UserID        int64    `json:"userId"`
	FacilityID    *int64   `json:"facilityId,omitempty"`
	FacilityIDs   []int64  `json:"facilityIds,omitempty"`
	EventName     *string  `json:"eventName,omitempty"`
	CustomerName  string   `json:"customerName"`
	CustomerPhone *string  `json:"customerPhone,omitempty"`
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	BookedUnits   *int     `json:"bookedUnits,omitempty"`
	Status        string   `json:"status"`
	PaymentStatus string   `json:"paymentStatus"`

	TotalAmount        float64 `json:"totalAmount"`
	AdvanceAmount      float64 `json:"advanceAmount"`
	PaidAmount         float64 `json:"paidAmount"`
	BalanceAmount      float64 `json:"balanceAmount"`
	CancellationCharge float64 `json:"cancellationCharge"`
	RefundAmount       float64 `json:"refundAmount"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	RescheduleCount   int                       `json:"rescheduleCount"`
	RescheduleHistory []RescheduleEntryResponse `json:"rescheduleHistory,omitempty"`

	RemindAt  string  `json:"remindAt"`
	Notes     *string `json:"notes,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// RescheduleEntryResponse HTTP-представление записи истории переносов
type RescheduleEntryResponse struct {
	ID        int64   `json:"id"`
	FromStart string  `json:"fromStart"`
	FromEnd   string  `json:"fromEnd"`
	ToStart   string  `json:"toStart"`
	ToEnd     string  `json:"toEnd"`
	Reason    *string `json:"reason,omitempty"`
	ChangedBy int64   `json:"changedBy"`
	ChangedAt string  `json:"changedAt"`
}

// FromBooking конвертирует бронирование сервисного слоя в HTTP-представление
func FromBooking(b *models.Booking) *BookingResponse {
	resp := &BookingResponse{
		Kind:              string(b.Kind),
		RescheduleHistory: fromHistory(b.History),
	}

	if b.Kind == domain.KindUnit {
		u := b.Unit
		resp.ID = u.ID
		resp.UserID = u.UserID
		resp.FacilityID = &u.FacilityID
		resp.CustomerName = u.CustomerName
		resp.CustomerPhone = u.CustomerPhone
		resp.StartTime = u.StartTime.Format(time.RFC3339)
		resp.EndTime = u.EndTime.Format(time.RFC3339)
		resp.BookedUnits = &u.BookedUnits
		resp.Status = string(u.Status)
		resp.PaymentStatus = string(u.PaymentStatus)
		resp.TotalAmount = u.TotalAmount
		resp.AdvanceAmount = u.AdvanceAmount
		resp.PaidAmount = u.PaidAmount
		resp.BalanceAmount = u.BalanceAmount
		resp.CancellationCharge = u.CancellationCharge
		resp.RefundAmount = u.RefundAmount
		resp.CancellationReason = u.CancellationReason
		resp.CancelledAt = formatOptional(u.CancelledAt)
		resp.RescheduleCount = u.RescheduleCount
		resp.RemindAt = u.RemindAt.Format(time.RFC3339)
		resp.Notes = u.Notes
		resp.CreatedAt = u.CreatedAt.Format(time.RFC3339)
		resp.UpdatedAt = u.UpdatedAt.Format(time.RFC3339)
		return resp
	}

	e := b.Event
	resp.ID = e.ID
	resp.UserID = e.UserID
	resp.FacilityIDs = e.FacilityIDs
	resp.EventName = &e.EventName
	resp.CustomerName = e.CustomerName
	resp.CustomerPhone = e.CustomerPhone
	resp.StartTime = e.StartTime.Format(time.RFC3339)
	resp.EndTime = e.EndTime.Format(time.RFC3339)
	resp.Status = string(e.Status)
	resp.PaymentStatus = string(e.PaymentStatus)
	resp.TotalAmount = e.TotalAmount
	resp.AdvanceAmount = e.AdvanceAmount
	resp.PaidAmount = e.PaidAmount
	resp.BalanceAmount = e.BalanceAmount
	resp.CancellationCharge = e.CancellationCharge
	resp.RefundAmount = e.RefundAmount
	resp.CancellationReason = e.CancellationReason
	resp.CancelledAt = formatOptional(e.CancelledAt)
	resp.RescheduleCount = e.RescheduleCount
	resp.RemindAt = e.RemindAt.Format(time.RFC3339)
	resp.Notes = e.Notes
	resp.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	resp.UpdatedAt = e.UpdatedAt.Format(time.RFC3339)
	return resp
}

func fromHistory(entries []*domain.RescheduleEntry) []RescheduleEntryResponse {
	if len(entries) == 0 {
		return nil
	}
	result := make([]RescheduleEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, RescheduleEntryResponse{
			ID:        e.ID,
			FromStart: e.FromStart.Format(time.RFC3339),
			FromEnd:   e.FromEnd.Format(time.RFC3339),
			ToStart:   e.ToStart.Format(time.RFC3339),
			ToEnd:     e.ToEnd.Format(time.RFC3339),
			Reason:    e.Reason,
			ChangedBy: e.ChangedBy,
			ChangedAt: e.ChangedAt.Format(time.RFC3339),
		})
	}
	return result
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
