package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrTerminalState возвращается при переносе завершенного или отмененного бронирования
	ErrTerminalState = errors.New("reschedule_booking: booking is in terminal state")

	// ErrStartInPast возвращается, когда новое начало в прошлом
	ErrStartInPast = errors.New("reschedule_booking: new start time is in the past")

	// ErrInsufficientCapacity возвращается, когда на новом интервале не хватает юнитов
	ErrInsufficientCapacity = errors.New("reschedule_booking: insufficient capacity on new interval")

	// ErrFacilityConflict возвращается, когда объект занят на новом интервале
	ErrFacilityConflict = errors.New("reschedule_booking: facility conflict on new interval")

	// ErrFacilityNotFound возвращается, когда объект из нового набора не найден
	ErrFacilityNotFound = errors.New("reschedule_booking: facility not found")

	// ErrFacilityInactive возвращается, когда объект из нового набора деактивирован
	ErrFacilityInactive = errors.New("reschedule_booking: facility is inactive")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
