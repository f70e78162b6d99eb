package queue

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// Действия жизненного цикла бронирования, попадающие в routing key
const (
	ActionCreated         = "created"
	ActionStatusChanged   = "status_changed"
	ActionPaymentRecorded = "payment_recorded"
	ActionCancelled       = "cancelled"
	ActionRescheduled     = "rescheduled"
)

// RoutingKey строит ключ маршрутизации вида booking.<kind>.<action>
func RoutingKey(kind domain.BookingKind, action string) string {
	return fmt.Sprintf("booking.%s.%s", kind, action)
}

// BookingCreatedEvent публикуется при создании бронирования
type BookingCreatedEvent struct {
	Kind        domain.BookingKind   `json:"kind"`
	BookingID   int64                `json:"bookingId"`
	UserID      int64                `json:"userId"`
	FacilityIDs []int64              `json:"facilityIds"`
	StartTime   time.Time            `json:"startTime"`
	EndTime     time.Time            `json:"endTime"`
	TotalAmount float64              `json:"totalAmount"`
	Status      domain.BookingStatus `json:"status"`
}

// StatusChangedEvent публикуется при смене статуса бронирования
type StatusChangedEvent struct {
	Kind          domain.BookingKind    `json:"kind"`
	BookingID     int64                 `json:"bookingId"`
	Status        *domain.BookingStatus `json:"status,omitempty"`
	PaymentStatus *domain.PaymentStatus `json:"paymentStatus,omitempty"`
}

// PaymentRecordedEvent публикуется при учете платежа
type PaymentRecordedEvent struct {
	Kind          domain.BookingKind   `json:"kind"`
	BookingID     int64                `json:"bookingId"`
	Amount        float64              `json:"amount"`
	PaidAmount    float64              `json:"paidAmount"`
	BalanceAmount float64              `json:"balanceAmount"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
}

// BookingCancelledEvent публикуется при отмене бронирования
type BookingCancelledEvent struct {
	Kind               domain.BookingKind `json:"kind"`
	BookingID          int64              `json:"bookingId"`
	CancellationCharge float64            `json:"cancellationCharge"`
	RefundAmount       float64            `json:"refundAmount"`
	CancelledAt        time.Time          `json:"cancelledAt"`
}

// BookingRescheduledEvent публикуется при переносе бронирования
type BookingRescheduledEvent struct {
	Kind      domain.BookingKind `json:"kind"`
	BookingID int64              `json:"bookingId"`
	FromStart time.Time          `json:"fromStart"`
	FromEnd   time.Time          `json:"fromEnd"`
	ToStart   time.Time          `json:"toStart"`
	ToEnd     time.Time          `json:"toEnd"`
}
