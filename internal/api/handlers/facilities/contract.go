package facilities

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// FacilityProvider интерфейс чтения объектов.
// Реализуется репозиторием объектов напрямую: операции чтения
// не требуют бизнес-логики поверх хранилища.
type FacilityProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	ListActive(ctx context.Context) ([]*domain.Facility, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
