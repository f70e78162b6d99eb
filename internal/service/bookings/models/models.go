package models

import "github.com/m04kA/SMC-FacilityService/internal/domain"

// Booking унифицированное представление бронирования любого типа.
// Заполнено ровно одно из полей Unit и Event в зависимости от Kind.
type Booking struct {
	Kind  domain.BookingKind
	Unit  *domain.UnitBooking
	Event *domain.EventBooking

	// История переносов в порядке добавления
	History []*domain.RescheduleEntry
}

// ID идентификатор бронирования
func (b *Booking) ID() int64 {
	if b.Kind == domain.KindUnit {
		return b.Unit.ID
	}
	return b.Event.ID
}

// Status текущий статус бронирования
func (b *Booking) Status() domain.BookingStatus {
	if b.Kind == domain.KindUnit {
		return b.Unit.Status
	}
	return b.Event.Status
}
