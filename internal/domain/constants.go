package domain

import "time"

// Default configuration values
const (
	// DefaultReminderOffset за сколько до начала бронирования выставляется
	// напоминание (RemindAt = StartTime - offset)
	DefaultReminderOffset = 24 * time.Hour

	// DefaultCompletionSweepInterval период фонового перевода
	// завершившихся бронирований в статус completed
	DefaultCompletionSweepInterval = 5 * time.Minute
)

// Business validation constants
const (
	MinBookedUnits              = 1
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxEventNameLength          = 200
	MaxCustomerNameLength       = 200
)

// UnitActiveStatuses статусы юнитных бронирований, занимающие вместимость
var UnitActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusBooked,
}

// EventActiveStatuses статусы событийных бронирований, блокирующие объекты
var EventActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses статусы, из которых нет переходов
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}

// ValidUnitStatus проверяет статус юнитного бронирования
func ValidUnitStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusBooked, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// ValidEventStatus проверяет статус событийного бронирования
// (статус booked для событий не используется)
func ValidEventStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// ValidPaymentStatus проверяет платёжный статус
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentPaid, PaymentRefunded:
		return true
	default:
		return false
	}
}
