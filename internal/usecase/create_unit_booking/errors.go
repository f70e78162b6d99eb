package create_unit_booking

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("create_unit_booking: facility not found")

	// ErrFacilityInactive возвращается, когда объект деактивирован
	ErrFacilityInactive = errors.New("create_unit_booking: facility is inactive")

	// ErrStartInPast возвращается, когда начало бронирования в прошлом
	ErrStartInPast = errors.New("create_unit_booking: start time is in the past")

	// ErrInsufficientCapacity возвращается, когда свободных юнитов меньше запрошенного
	ErrInsufficientCapacity = errors.New("create_unit_booking: insufficient capacity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_unit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_unit_booking: internal error")
)
