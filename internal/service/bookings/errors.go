package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrAlreadyCancelled возвращается при повторной отмене бронирования
	ErrAlreadyCancelled = errors.New("bookings.service: booking already cancelled")

	// ErrTerminalState возвращается при попытке изменить завершенное или отмененное бронирование
	ErrTerminalState = errors.New("bookings.service: booking is in terminal state")

	// ErrInvalidStatus возвращается при недопустимом статусе для данного типа бронирования
	ErrInvalidStatus = errors.New("bookings.service: invalid status")

	// ErrInvalidPayment возвращается при некорректной сумме платежа
	ErrInvalidPayment = errors.New("bookings.service: payment amount must be positive")

	// ErrPaymentOnCancelled возвращается при попытке оплатить отмененное бронирование
	ErrPaymentOnCancelled = errors.New("bookings.service: cannot record payment on cancelled booking")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
