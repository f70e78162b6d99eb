package domain

import (
	"errors"
	"time"
)

// BookingKind различает два вида бронирований: юнитные (часть вместимости
// одного объекта) и событийные (эксклюзивный захват одного или нескольких
// объектов целиком)
type BookingKind string

const (
	KindUnit  BookingKind = "unit"
	KindEvent BookingKind = "event"
)

// ErrUnknownBookingKind возвращается при неизвестном виде бронирования
var ErrUnknownBookingKind = errors.New("domain: unknown booking kind")

// ParseBookingKind валидирует строковый вид бронирования
func ParseBookingKind(s string) (BookingKind, error) {
	switch BookingKind(s) {
	case KindUnit:
		return KindUnit, nil
	case KindEvent:
		return KindEvent, nil
	default:
		return "", ErrUnknownBookingKind
	}
}

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusBooked    BookingStatus = "booked" // только для юнитных бронирований
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus represents the derived payment state of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// UnitBooking is a reservation consuming a fractional amount (>= 1 unit)
// of a single facility's capacity for a half-open interval [StartTime, EndTime).
type UnitBooking struct {
	ID         int64
	FacilityID int64
	UserID     int64

	// Denormalized customer data for history
	CustomerName  string
	CustomerPhone *string

	StartTime   time.Time // UTC
	EndTime     time.Time // UTC, EndTime > StartTime
	BookedUnits int       // 1 <= BookedUnits <= facility.CapacityUnits

	Status        BookingStatus
	PaymentStatus PaymentStatus

	TotalAmount        float64
	AdvanceAmount      float64
	PaidAmount         float64
	BalanceAmount      float64 // == max(0, TotalAmount - PaidAmount), всегда
	CancellationCharge float64
	RefundAmount       float64

	CancellationReason *string
	CancelledAt        *time.Time

	RescheduleCount int
	RemindAt        time.Time

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking counts toward facility capacity
func (b *UnitBooking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusBooked
}

// IsTerminal returns true if no further transitions are allowed
func (b *UnitBooking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *UnitBooking) CanBeCancelled() bool {
	return !b.IsTerminal()
}

// CanAcceptPayment returns true if payments may be recorded on the booking
func (b *UnitBooking) CanAcceptPayment() bool {
	return b.Status != StatusCancelled
}

// EventBooking is a reservation consuming the ENTIRE capacity of one or more
// facilities for a half-open interval (exclusive use, e.g. a corporate event
// taking the whole court bank).
type EventBooking struct {
	ID     int64
	UserID int64

	EventName     string
	CustomerName  string
	CustomerPhone *string

	FacilityIDs []int64 // >= 1, все активны на момент создания

	StartTime time.Time // UTC
	EndTime   time.Time // UTC, EndTime > StartTime

	Status        BookingStatus
	PaymentStatus PaymentStatus

	TotalAmount        float64
	AdvanceAmount      float64
	PaidAmount         float64
	BalanceAmount      float64
	CancellationCharge float64
	RefundAmount       float64

	CancellationReason *string
	CancelledAt        *time.Time

	RescheduleCount int
	RemindAt        time.Time

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the event blocks its facilities
func (b *EventBooking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further transitions are allowed
func (b *EventBooking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the event can still be cancelled
func (b *EventBooking) CanBeCancelled() bool {
	return !b.IsTerminal()
}

// CanAcceptPayment returns true if payments may be recorded on the event
func (b *EventBooking) CanAcceptPayment() bool {
	return b.Status != StatusCancelled
}

// ReferencesFacility returns true if the event occupies the given facility
func (b *EventBooking) ReferencesFacility(facilityID int64) bool {
	for _, id := range b.FacilityIDs {
		if id == facilityID {
			return true
		}
	}
	return false
}

// RescheduleEntry is an immutable, append-only audit record of one
// reschedule of a booking. Stored in a separate table keyed by booking
// instead of growing the booking row indefinitely.
type RescheduleEntry struct {
	ID        int64
	Kind      BookingKind
	BookingID int64

	FromStart time.Time
	FromEnd   time.Time
	ToStart   time.Time
	ToEnd     time.Time

	Reason    *string
	ChangedBy int64
	ChangedAt time.Time
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	FacilityID      *int64         // фильтр по объекту (опционально)
	From            *time.Time     // начало периода (опционально)
	To              *time.Time     // конец периода (опционально)
	Status          *BookingStatus // фильтр по статусу (опционально)
	IncludeInactive bool           // включать ли завершённые и отменённые
}
