package create_event_booking

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда один из объектов не найден
	ErrFacilityNotFound = errors.New("create_event_booking: facility not found")

	// ErrFacilityInactive возвращается, когда один из объектов деактивирован
	ErrFacilityInactive = errors.New("create_event_booking: facility is inactive")

	// ErrStartInPast возвращается, когда начало события в прошлом
	ErrStartInPast = errors.New("create_event_booking: start time is in the past")

	// ErrFacilityConflict возвращается, когда объект занят пересекающимся бронированием
	ErrFacilityConflict = errors.New("create_event_booking: facility conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_event_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_event_booking: internal error")
)
