package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	facilityRepoPkg "github.com/m04kA/SMC-FacilityService/internal/infra/storage/facility"
)

type fakeFacilityRepo struct {
	facility *domain.Facility
}

func (r *fakeFacilityRepo) GetByID(_ context.Context, id int64) (*domain.Facility, error) {
	if r.facility == nil || r.facility.ID != id {
		return nil, facilityRepoPkg.ErrFacilityNotFound
	}
	return r.facility, nil
}

type fakeUnitRepo struct {
	bookings []*domain.UnitBooking
}

func (r *fakeUnitRepo) ListActiveOverlapping(_ context.Context, facilityID int64, start, end time.Time, _ *int64) ([]*domain.UnitBooking, error) {
	var out []*domain.UnitBooking
	for _, b := range r.bookings {
		if b.FacilityID == facilityID && domain.Overlaps(b.StartTime, b.EndTime, start, end) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeEventRepo struct {
	events []*domain.EventBooking
}

func (r *fakeEventRepo) ListActiveOverlapping(_ context.Context, facilityIDs []int64, start, end time.Time, _ *int64) ([]*domain.EventBooking, error) {
	var out []*domain.EventBooking
	for _, e := range r.events {
		if !domain.Overlaps(e.StartTime, e.EndTime, start, end) {
			continue
		}
		for _, id := range facilityIDs {
			if e.ReferencesFacility(id) {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var windowFrom = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func h(offset int) time.Time { return windowFrom.Add(time.Duration(offset) * time.Hour) }

func newUseCase(unitRepo *fakeUnitRepo, eventRepo *fakeEventRepo) *UseCase {
	return NewUseCase(
		&fakeFacilityRepo{facility: &domain.Facility{ID: 1, Name: "Корт А", CapacityUnits: 8, Active: true}},
		unitRepo,
		eventRepo,
		nopLogger{},
	)
}

func TestExecute_EmptyWindow(t *testing.T) {
	uc := newUseCase(&fakeUnitRepo{}, &fakeEventRepo{})

	resp, err := uc.Execute(context.Background(), &Request{FacilityID: 1, From: windowFrom, To: h(12)})
	require.NoError(t, err)

	assert.Equal(t, 8, resp.CapacityUnits)
	require.Len(t, resp.Segments, 1)
	assert.Equal(t, Segment{Start: windowFrom, End: h(12), AvailableUnits: 8}, resp.Segments[0])
}

func TestExecute_Timeline(t *testing.T) {
	// Окно 8:00-20:00, вместимость 8:
	//   10:00-12:00 занято 3 юнита
	//   11:00-13:00 занято 2 юнита
	//   15:00-17:00 событие (объект целиком)
	unitRepo := &fakeUnitRepo{bookings: []*domain.UnitBooking{
		{ID: 1, FacilityID: 1, StartTime: h(2), EndTime: h(4), BookedUnits: 3, Status: domain.StatusConfirmed},
		{ID: 2, FacilityID: 1, StartTime: h(3), EndTime: h(5), BookedUnits: 2, Status: domain.StatusPending},
	}}
	eventRepo := &fakeEventRepo{events: []*domain.EventBooking{
		{ID: 3, FacilityIDs: []int64{1}, StartTime: h(7), EndTime: h(9), Status: domain.StatusConfirmed},
	}}
	uc := newUseCase(unitRepo, eventRepo)

	resp, err := uc.Execute(context.Background(), &Request{FacilityID: 1, From: windowFrom, To: h(12)})
	require.NoError(t, err)

	expected := []Segment{
		{Start: h(0), End: h(2), AvailableUnits: 8},
		{Start: h(2), End: h(3), AvailableUnits: 5},
		{Start: h(3), End: h(4), AvailableUnits: 3},
		{Start: h(4), End: h(5), AvailableUnits: 6},
		{Start: h(5), End: h(7), AvailableUnits: 8},
		{Start: h(7), End: h(9), AvailableUnits: 0},
		{Start: h(9), End: h(12), AvailableUnits: 8},
	}
	assert.Equal(t, expected, resp.Segments)
}

func TestExecute_MergesEqualSegments(t *testing.T) {
	// Два бронирования встык по 2 юнита дают один отрезок с 6 свободными
	unitRepo := &fakeUnitRepo{bookings: []*domain.UnitBooking{
		{ID: 1, FacilityID: 1, StartTime: h(2), EndTime: h(4), BookedUnits: 2, Status: domain.StatusConfirmed},
		{ID: 2, FacilityID: 1, StartTime: h(4), EndTime: h(6), BookedUnits: 2, Status: domain.StatusConfirmed},
	}}
	uc := newUseCase(unitRepo, &fakeEventRepo{})

	resp, err := uc.Execute(context.Background(), &Request{FacilityID: 1, From: windowFrom, To: h(8)})
	require.NoError(t, err)

	expected := []Segment{
		{Start: h(0), End: h(2), AvailableUnits: 8},
		{Start: h(2), End: h(6), AvailableUnits: 6},
		{Start: h(6), End: h(8), AvailableUnits: 8},
	}
	assert.Equal(t, expected, resp.Segments)
}

func TestExecute_BookingClippedToWindow(t *testing.T) {
	// Бронирование выходит за края окна: границы обрезаются по окну
	unitRepo := &fakeUnitRepo{bookings: []*domain.UnitBooking{
		{ID: 1, FacilityID: 1, StartTime: h(-2), EndTime: h(2), BookedUnits: 5, Status: domain.StatusConfirmed},
	}}
	uc := newUseCase(unitRepo, &fakeEventRepo{})

	resp, err := uc.Execute(context.Background(), &Request{FacilityID: 1, From: windowFrom, To: h(4)})
	require.NoError(t, err)

	expected := []Segment{
		{Start: h(0), End: h(2), AvailableUnits: 3},
		{Start: h(2), End: h(4), AvailableUnits: 8},
	}
	assert.Equal(t, expected, resp.Segments)
}

func TestExecute_FacilityNotFound(t *testing.T) {
	uc := newUseCase(&fakeUnitRepo{}, &fakeEventRepo{})

	_, err := uc.Execute(context.Background(), &Request{FacilityID: 99, From: windowFrom, To: h(4)})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestExecute_InvalidWindow(t *testing.T) {
	uc := newUseCase(&fakeUnitRepo{}, &fakeEventRepo{})

	_, err := uc.Execute(context.Background(), &Request{FacilityID: 1, From: h(4), To: windowFrom})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{FacilityID: 0, From: windowFrom, To: h(4)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
