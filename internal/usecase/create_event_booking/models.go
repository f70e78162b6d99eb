package create_event_booking

import (
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// Request модель запроса на создание событийного бронирования
type Request struct {
	UserID        int64     // ID пользователя (из заголовка аутентификации)
	EventName     string    // Название события
	CustomerName  string    // Имя клиента
	CustomerPhone *string   // Телефон клиента (опционально)
	FacilityIDs   []int64   // Объекты, занимаемые целиком (минимум один)
	StartTime     time.Time // Начало интервала (UTC)
	EndTime       time.Time // Конец интервала (UTC)
	AdvanceAmount float64   // Аванс при создании
	PriceOverride *float64  // Явная цена вместо автоматического расчета (опционально)
	Notes         *string   // Заметки (опционально)
}

// Response модель ответа с созданным событийным бронированием
type Response struct {
	ID            int64
	UserID        int64
	EventName     string
	CustomerName  string
	CustomerPhone *string
	FacilityIDs   []int64
	StartTime     time.Time
	EndTime       time.Time
	Status        domain.BookingStatus
	PaymentStatus domain.PaymentStatus
	TotalAmount   float64
	AdvanceAmount float64
	PaidAmount    float64
	BalanceAmount float64
	RemindAt      time.Time
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
