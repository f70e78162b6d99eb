package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/infra/queue"
	eventRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/eventbooking"
	facilityRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/facility"
	unitRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/unitbooking"
	"github.com/m04kA/SMC-FacilityService/internal/service/availability"
)

// UseCase use case для переноса бронирования на новый интервал
type UseCase struct {
	facilityRepo   FacilityRepository
	unitBookings   UnitBookingRepository
	eventBookings  EventBookingRepository
	rescheduleLog  RescheduleLogRepository
	availability   AvailabilityChecker
	txManager      TransactionManager
	publisher      EventPublisher
	timeProvider   TimeProvider
	reminderOffset time.Duration
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	facilityRepo FacilityRepository,
	unitBookings UnitBookingRepository,
	eventBookings EventBookingRepository,
	rescheduleLog RescheduleLogRepository,
	availability AvailabilityChecker,
	txManager TransactionManager,
	publisher EventPublisher,
	reminderOffset time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		facilityRepo:   facilityRepo,
		unitBookings:   unitBookings,
		eventBookings:  eventBookings,
		rescheduleLog:  rescheduleLog,
		availability:   availability,
		txManager:      txManager,
		publisher:      publisher,
		timeProvider:   &RealTimeProvider{},
		reminderOffset: reminderOffset,
		logger:         logger,
	}
}

// Execute выполняет use case переноса бронирования.
// Проверка нового интервала, обновление строки и запись истории выполняются
// в одной сериализуемой транзакции: при конфликте на новом интервале
// бронирование остается нетронутым, запись истории не появляется.
//
// Стоимость при переносе не пересчитывается: цена зафиксирована при создании.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: kind=%s, booking=%d, user=%d, newInterval=[%s, %s)",
		req.Kind, req.BookingID, req.UserID, req.NewStart.Format(time.RFC3339), req.NewEnd.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateStart(req.NewStart, now); err != nil {
		uc.logger.Warn("RescheduleBooking: new start %s is in the past", req.NewStart.Format(time.RFC3339))
		return nil, err
	}

	var result *Response

	// 2. Перенос в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if req.Kind == domain.KindUnit {
			return uc.rescheduleUnit(txCtx, req, &result)
		}
		return uc.rescheduleEvent(txCtx, req, &result)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: successfully rescheduled %s booking id=%d, count=%d",
		req.Kind, req.BookingID, result.RescheduleCount)

	uc.publishRescheduled(ctx, req.Kind, result.HistoryEntry)

	return result, nil
}

func (uc *UseCase) rescheduleUnit(ctx context.Context, req *Request, out **Response) error {
	booking, err := uc.unitBookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, unitRepo.ErrBookingNotFound) {
			return fmt.Errorf("%w: unit booking %d", ErrBookingNotFound, req.BookingID)
		}
		uc.logger.Error("RescheduleBooking: failed to get unit booking %d: %v", req.BookingID, err)
		return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.IsTerminal() {
		uc.logger.Warn("RescheduleBooking: unit booking %d is %s", req.BookingID, booking.Status)
		return fmt.Errorf("%w: booking is %s", ErrTerminalState, booking.Status)
	}

	facility, err := uc.facilityRepo.GetByID(ctx, booking.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Error("RescheduleBooking: facility %d of booking %d not found", booking.FacilityID, req.BookingID)
			return fmt.Errorf("%w: facility %d not found", ErrInternal, booking.FacilityID)
		}
		uc.logger.Error("RescheduleBooking: failed to get facility %d: %v", booking.FacilityID, err)
		return fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// Собственное бронирование исключается из подсчета занятости
	check, err := uc.availability.CheckUnitCapacity(ctx, facility, req.NewStart, req.NewEnd, booking.BookedUnits, &booking.ID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: capacity check failed: %v", err)
		return fmt.Errorf("%w: capacity check failed: %v", ErrInternal, err)
	}
	if !check.Available {
		uc.logger.Warn("RescheduleBooking: facility %d has %d/%d units free on new interval, need %d",
			facility.ID, check.AvailableUnits, check.CapacityUnits, booking.BookedUnits)
		return fmt.Errorf("%w: need %d units, %d available", ErrInsufficientCapacity, booking.BookedUnits, check.AvailableUnits)
	}

	remindAt := req.NewStart.Add(-uc.reminderOffset)
	if err := uc.unitBookings.Reschedule(ctx, booking.ID, req.NewStart, req.NewEnd, remindAt); err != nil {
		if errors.Is(err, unitRepo.ErrBookingNotUpdatable) {
			return fmt.Errorf("%w: booking %d", ErrTerminalState, booking.ID)
		}
		uc.logger.Error("RescheduleBooking: failed to update unit booking %d: %v", booking.ID, err)
		return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
	}

	entry, err := uc.appendHistory(ctx, domain.KindUnit, booking.ID, booking.StartTime, booking.EndTime, req)
	if err != nil {
		return err
	}

	*out = &Response{
		Kind:            domain.KindUnit,
		BookingID:       booking.ID,
		StartTime:       req.NewStart,
		EndTime:         req.NewEnd,
		RemindAt:        remindAt,
		RescheduleCount: booking.RescheduleCount + 1,
		Status:          booking.Status,
		HistoryEntry:    entry,
	}
	return nil
}

func (uc *UseCase) rescheduleEvent(ctx context.Context, req *Request, out **Response) error {
	booking, err := uc.eventBookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrBookingNotFound) {
			return fmt.Errorf("%w: event booking %d", ErrBookingNotFound, req.BookingID)
		}
		uc.logger.Error("RescheduleBooking: failed to get event booking %d: %v", req.BookingID, err)
		return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.IsTerminal() {
		uc.logger.Warn("RescheduleBooking: event booking %d is %s", req.BookingID, booking.Status)
		return fmt.Errorf("%w: booking is %s", ErrTerminalState, booking.Status)
	}

	// Набор объектов меняется только если клиент передал новый
	facilityIDs := booking.FacilityIDs
	if req.NewFacilityIDs != nil {
		facilityIDs = req.NewFacilityIDs
	}

	facilities, err := uc.loadFacilities(ctx, facilityIDs, req.NewFacilityIDs != nil)
	if err != nil {
		return err
	}

	err = uc.availability.CheckExclusive(ctx, facilities, req.NewStart, req.NewEnd, &booking.ID)
	if err != nil {
		if errors.Is(err, availability.ErrFacilityConflict) {
			uc.logger.Warn("RescheduleBooking: conflict on new interval: %v", err)
			return fmt.Errorf("%w: %v", ErrFacilityConflict, err)
		}
		uc.logger.Error("RescheduleBooking: exclusivity check failed: %v", err)
		return fmt.Errorf("%w: exclusivity check failed: %v", ErrInternal, err)
	}

	remindAt := req.NewStart.Add(-uc.reminderOffset)
	if err := uc.eventBookings.Reschedule(ctx, booking.ID, req.NewStart, req.NewEnd, remindAt); err != nil {
		if errors.Is(err, eventRepo.ErrBookingNotUpdatable) {
			return fmt.Errorf("%w: booking %d", ErrTerminalState, booking.ID)
		}
		uc.logger.Error("RescheduleBooking: failed to update event booking %d: %v", booking.ID, err)
		return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
	}

	if req.NewFacilityIDs != nil {
		if err := uc.eventBookings.ReplaceFacilities(ctx, booking.ID, facilityIDs); err != nil {
			uc.logger.Error("RescheduleBooking: failed to replace facilities of event booking %d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to replace facilities: %v", ErrInternal, err)
		}
	}

	entry, err := uc.appendHistory(ctx, domain.KindEvent, booking.ID, booking.StartTime, booking.EndTime, req)
	if err != nil {
		return err
	}

	*out = &Response{
		Kind:            domain.KindEvent,
		BookingID:       booking.ID,
		StartTime:       req.NewStart,
		EndTime:         req.NewEnd,
		FacilityIDs:     facilityIDs,
		RemindAt:        remindAt,
		RescheduleCount: booking.RescheduleCount + 1,
		Status:          booking.Status,
		HistoryEntry:    entry,
	}
	return nil
}

// loadFacilities получает объекты в порядке запроса. Для нового набора
// дополнительно проверяется существование и активность каждого объекта;
// исходный набор бронирования был проверен при создании.
func (uc *UseCase) loadFacilities(ctx context.Context, ids []int64, isNewSet bool) ([]*domain.Facility, error) {
	found, err := uc.facilityRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get facilities %v: %v", ids, err)
		return nil, fmt.Errorf("%w: failed to get facilities: %v", ErrInternal, err)
	}

	byID := make(map[int64]*domain.Facility, len(found))
	for _, f := range found {
		byID[f.ID] = f
	}

	facilities := make([]*domain.Facility, 0, len(ids))
	for _, id := range ids {
		f, ok := byID[id]
		if !ok {
			uc.logger.Warn("RescheduleBooking: facility id=%d not found", id)
			return nil, fmt.Errorf("%w: facility %d", ErrFacilityNotFound, id)
		}
		if isNewSet && !f.AcceptsNewBookings() {
			uc.logger.Warn("RescheduleBooking: facility id=%d is inactive", id)
			return nil, fmt.Errorf("%w: facility %q", ErrFacilityInactive, f.Name)
		}
		facilities = append(facilities, f)
	}

	return facilities, nil
}

func (uc *UseCase) appendHistory(ctx context.Context, kind domain.BookingKind, bookingID int64, fromStart, fromEnd time.Time, req *Request) (*domain.RescheduleEntry, error) {
	entry, err := uc.rescheduleLog.Append(ctx, &domain.RescheduleEntry{
		Kind:      kind,
		BookingID: bookingID,
		FromStart: fromStart,
		FromEnd:   fromEnd,
		ToStart:   req.NewStart,
		ToEnd:     req.NewEnd,
		Reason:    req.Reason,
		ChangedBy: req.UserID,
	})
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to append history for %s booking %d: %v", kind, bookingID, err)
		return nil, fmt.Errorf("%w: failed to append history: %v", ErrInternal, err)
	}
	return entry, nil
}

func (uc *UseCase) publishRescheduled(ctx context.Context, kind domain.BookingKind, entry *domain.RescheduleEntry) {
	err := uc.publisher.Publish(ctx, queue.RoutingKey(kind, queue.ActionRescheduled), queue.BookingRescheduledEvent{
		Kind:      kind,
		BookingID: entry.BookingID,
		FromStart: entry.FromStart,
		FromEnd:   entry.FromEnd,
		ToStart:   entry.ToStart,
		ToEnd:     entry.ToEnd,
	})
	if err != nil {
		uc.logger.Warn("RescheduleBooking: failed to publish rescheduled event for booking id=%d: %v", entry.BookingID, err)
	}
}
