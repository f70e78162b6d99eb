package create_unit_booking

import (
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// Request модель запроса на создание юнитного бронирования
type Request struct {
	UserID        int64      // ID пользователя (из заголовка аутентификации)
	FacilityID    int64      // ID объекта
	CustomerName  string     // Имя клиента
	CustomerPhone *string    // Телефон клиента (опционально)
	StartTime     time.Time  // Начало интервала (UTC)
	EndTime       time.Time  // Конец интервала (UTC)
	BookedUnits   int        // Сколько юнитов вместимости занимается
	AdvanceAmount float64    // Аванс при создании
	PriceOverride *float64   // Явная цена вместо автоматического расчета (опционально)
	Notes         *string    // Заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	FacilityID    int64
	UserID        int64
	CustomerName  string
	CustomerPhone *string
	StartTime     time.Time
	EndTime       time.Time
	BookedUnits   int
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
