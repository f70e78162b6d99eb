package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// Request модель запроса на перенос бронирования
type Request struct {
	Kind           domain.BookingKind // Вид бронирования (unit или event)
	BookingID      int64              // ID бронирования
	UserID         int64              // Кто переносит (из заголовка аутентификации)
	NewStart       time.Time          // Новое начало интервала (UTC)
	NewEnd         time.Time          // Новый конец интервала (UTC)
	NewFacilityIDs []int64            // Новый набор объектов (опционально, только для событий)
	Reason         *string            // Причина переноса (опционально)
}

// Response модель ответа после переноса
type Response struct {
	Kind            domain.BookingKind
	BookingID       int64
	StartTime       time.Time
	EndTime         time.Time
	FacilityIDs     []int64 // Заполняется только для событий
	RemindAt        time.Time
	RescheduleCount int
	Status          domain.BookingStatus

	// Добавленная запись истории
	HistoryEntry *domain.RescheduleEntry
}
