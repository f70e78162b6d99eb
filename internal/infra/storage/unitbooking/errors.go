package unitbooking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("unitbooking.repository: booking not found")

	// ErrBookingNotUpdatable возвращается, когда строка не обновлена:
	// бронирование не существует или уже в терминальном статусе
	ErrBookingNotUpdatable = errors.New("unitbooking.repository: booking not found or terminal")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("unitbooking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("unitbooking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("unitbooking.repository: failed to scan row")
)
