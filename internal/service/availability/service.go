// Package availability проверяет занятость площадок.
//
// Проверки читают пересекающиеся бронирования и сравнивают их с вместимостью
// площадки. Вызывающий код обязан выполнять проверку и последующую запись в
// одной serializable-транзакции: только так проверка и вставка атомарны и две
// конкурентные брони не перепродают вместимость.
package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// UnitCapacityResult результат проверки вместимости площадки на интервале
type UnitCapacityResult struct {
	Available      bool
	AvailableUnits int
	CapacityUnits  int
}

// Service сервис проверки занятости площадок
type Service struct {
	unitRepo  UnitBookingRepo
	eventRepo EventBookingRepo
	logger    Logger
}

// NewService создает новый экземпляр сервиса занятости
func NewService(unitRepo UnitBookingRepo, eventRepo EventBookingRepo, logger Logger) *Service {
	return &Service{
		unitRepo:  unitRepo,
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// CheckUnitCapacity проверяет, хватает ли свободных юнитов площадки на интервале.
// excludeUnitID исключает бронирование из подсчета занятости (нужно при переносе).
func (s *Service) CheckUnitCapacity(ctx context.Context, facility *domain.Facility, start, end time.Time, requestedUnits int, excludeUnitID *int64) (*UnitCapacityResult, error) {
	if !domain.ValidInterval(start, end) {
		return nil, fmt.Errorf("%w: CheckUnitCapacity - start must be before end", ErrInvalidInterval)
	}

	// Активное событие занимает площадку целиком
	events, err := s.eventRepo.ListActiveOverlapping(ctx, []int64{facility.ID}, start, end, nil)
	if err != nil {
		s.logger.Error("availability.CheckUnitCapacity: failed to list events for facility %d: %v", facility.ID, err)
		return nil, fmt.Errorf("%w: CheckUnitCapacity - list overlapping events: %v", ErrInternal, err)
	}
	if len(events) > 0 {
		return &UnitCapacityResult{
			Available:      false,
			AvailableUnits: 0,
			CapacityUnits:  facility.CapacityUnits,
		}, nil
	}

	bookings, err := s.unitRepo.ListActiveOverlapping(ctx, facility.ID, start, end, excludeUnitID)
	if err != nil {
		s.logger.Error("availability.CheckUnitCapacity: failed to list unit bookings for facility %d: %v", facility.ID, err)
		return nil, fmt.Errorf("%w: CheckUnitCapacity - list overlapping unit bookings: %v", ErrInternal, err)
	}

	var occupied int
	for _, b := range bookings {
		occupied += b.BookedUnits
	}

	available := facility.CapacityUnits - occupied
	if available < 0 {
		available = 0
	}

	return &UnitCapacityResult{
		Available:      requestedUnits <= available,
		AvailableUnits: available,
		CapacityUnits:  facility.CapacityUnits,
	}, nil
}

// CheckExclusive проверяет, что все площадки полностью свободны на интервале.
// Событие требует эксклюзивного доступа: любое активное повременное бронирование
// или другое событие на любой из площадок даёт конфликт. В ошибке указывается
// первая конфликтующая площадка в порядке запроса.
func (s *Service) CheckExclusive(ctx context.Context, facilities []*domain.Facility, start, end time.Time, excludeEventID *int64) error {
	if !domain.ValidInterval(start, end) {
		return fmt.Errorf("%w: CheckExclusive - start must be before end", ErrInvalidInterval)
	}

	facilityIDs := make([]int64, 0, len(facilities))
	for _, f := range facilities {
		facilityIDs = append(facilityIDs, f.ID)
	}

	events, err := s.eventRepo.ListActiveOverlapping(ctx, facilityIDs, start, end, excludeEventID)
	if err != nil {
		s.logger.Error("availability.CheckExclusive: failed to list overlapping events: %v", err)
		return fmt.Errorf("%w: CheckExclusive - list overlapping events: %v", ErrInternal, err)
	}

	// Проверяем площадки в порядке запроса, чтобы ошибка была детерминированной
	for _, f := range facilities {
		for _, e := range events {
			if e.ReferencesFacility(f.ID) {
				return fmt.Errorf("%w: facility %q is reserved by another event", ErrFacilityConflict, f.Name)
			}
		}

		bookings, err := s.unitRepo.ListActiveOverlapping(ctx, f.ID, start, end, nil)
		if err != nil {
			s.logger.Error("availability.CheckExclusive: failed to list unit bookings for facility %d: %v", f.ID, err)
			return fmt.Errorf("%w: CheckExclusive - list overlapping unit bookings: %v", ErrInternal, err)
		}
		if len(bookings) > 0 {
			return fmt.Errorf("%w: facility %q has active unit bookings in this period", ErrFacilityConflict, f.Name)
		}
	}

	return nil
}
