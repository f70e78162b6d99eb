package eventbooking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда событийное бронирование не найдено
	ErrBookingNotFound = errors.New("eventbooking.repository: booking not found")

	// ErrBookingNotUpdatable возвращается, когда строка не обновлена:
	// бронирование не существует или уже в терминальном статусе
	ErrBookingNotUpdatable = errors.New("eventbooking.repository: booking not found or terminal")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("eventbooking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("eventbooking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("eventbooking.repository: failed to scan row")
)
