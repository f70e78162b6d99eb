package availability

import "errors"

var (
	// ErrInvalidInterval возвращается при некорректном интервале времени
	ErrInvalidInterval = errors.New("availability.service: invalid time interval")

	// ErrInsufficientCapacity возвращается, когда свободных юнитов меньше запрошенного
	ErrInsufficientCapacity = errors.New("availability.service: insufficient capacity")

	// ErrFacilityConflict возвращается, когда площадка занята пересекающимся бронированием
	ErrFacilityConflict = errors.New("availability.service: facility conflict")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("availability.service: internal error")
)
