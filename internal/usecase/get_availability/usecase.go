package get_availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/facility"
)

// UseCase use case для получения расписания занятости объекта
type UseCase struct {
	facilityRepo  FacilityRepository
	unitBookings  UnitBookingRepository
	eventBookings EventBookingRepository
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	facilityRepo FacilityRepository,
	unitBookings UnitBookingRepository,
	eventBookings EventBookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		facilityRepo:  facilityRepo,
		unitBookings:  unitBookings,
		eventBookings: eventBookings,
		logger:        logger,
	}
}

// Execute строит расписание занятости объекта на окне [From, To).
// Окно разбивается по границам бронирований на отрезки с постоянным числом
// свободных юнитов; соседние отрезки с одинаковой доступностью склеиваются.
//
// Ответ носит справочный характер: создание брони перепроверяет занятость
// в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: facility=%d, window=[%s, %s)",
		req.FacilityID, req.From.Format(time.RFC3339), req.To.Format(time.RFC3339))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	facility, err := uc.facilityRepo.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("GetAvailability: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GetAvailability: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	bookings, err := uc.unitBookings.ListActiveOverlapping(ctx, req.FacilityID, req.From, req.To, nil)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list unit bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list unit bookings: %v", ErrInternal, err)
	}

	events, err := uc.eventBookings.ListActiveOverlapping(ctx, []int64{req.FacilityID}, req.From, req.To, nil)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list event bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list event bookings: %v", ErrInternal, err)
	}

	segments := buildTimeline(facility, req.From, req.To, bookings, events)

	return &Response{
		FacilityID:    facility.ID,
		CapacityUnits: facility.CapacityUnits,
		From:          req.From,
		To:            req.To,
		Segments:      segments,
	}, nil
}

func validateRequest(req *Request) error {
	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityId must be positive", ErrInvalidInput)
	}
	if !domain.ValidInterval(req.From, req.To) {
		return fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}
	return nil
}

// buildTimeline разбивает окно по границам бронирований и считает
// доступность на каждом отрезке
func buildTimeline(facility *domain.Facility, from, to time.Time, bookings []*domain.UnitBooking, events []*domain.EventBooking) []Segment {
	boundaries := collectBoundaries(from, to, bookings, events)

	segments := make([]Segment, 0, len(boundaries)-1)
	for i := 0; i < len(boundaries)-1; i++ {
		segStart, segEnd := boundaries[i], boundaries[i+1]

		available := availableOn(facility, segStart, segEnd, bookings, events)

		// Склеиваем с предыдущим отрезком при одинаковой доступности
		if n := len(segments); n > 0 && segments[n-1].AvailableUnits == available {
			segments[n-1].End = segEnd
			continue
		}

		segments = append(segments, Segment{
			Start:          segStart,
			End:            segEnd,
			AvailableUnits: available,
		})
	}

	return segments
}

// collectBoundaries собирает отсортированные уникальные границы отрезков:
// края окна и обрезанные по окну границы бронирований
func collectBoundaries(from, to time.Time, bookings []*domain.UnitBooking, events []*domain.EventBooking) []time.Time {
	set := map[time.Time]struct{}{
		from: {},
		to:   {},
	}

	add := func(t time.Time) {
		if t.After(from) && t.Before(to) {
			set[t] = struct{}{}
		}
	}

	for _, b := range bookings {
		add(b.StartTime)
		add(b.EndTime)
	}
	for _, e := range events {
		add(e.StartTime)
		add(e.EndTime)
	}

	boundaries := make([]time.Time, 0, len(set))
	for t := range set {
		boundaries = append(boundaries, t)
	}
	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i].Before(boundaries[j]) })

	return boundaries
}

// availableOn считает число свободных юнитов на отрезке [start, end)
func availableOn(facility *domain.Facility, start, end time.Time, bookings []*domain.UnitBooking, events []*domain.EventBooking) int {
	for _, e := range events {
		if domain.Overlaps(e.StartTime, e.EndTime, start, end) {
			// Событие занимает объект целиком
			return 0
		}
	}

	occupied := 0
	for _, b := range bookings {
		if domain.Overlaps(b.StartTime, b.EndTime, start, end) {
			occupied += b.BookedUnits
		}
	}

	available := facility.CapacityUnits - occupied
	if available < 0 {
		available = 0
	}
	return available
}
