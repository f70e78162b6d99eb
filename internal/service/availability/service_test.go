package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

type fakeUnitRepo struct {
	bookings []*domain.UnitBooking
	err      error

	gotExcludeID *int64
}

func (r *fakeUnitRepo) ListActiveOverlapping(_ context.Context, facilityID int64, start, end time.Time, excludeID *int64) ([]*domain.UnitBooking, error) {
	r.gotExcludeID = excludeID
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.UnitBooking
	for _, b := range r.bookings {
		if b.FacilityID != facilityID || !domain.Overlaps(b.StartTime, b.EndTime, start, end) {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeEventRepo struct {
	events []*domain.EventBooking
	err    error
}

func (r *fakeEventRepo) ListActiveOverlapping(_ context.Context, facilityIDs []int64, start, end time.Time, excludeID *int64) ([]*domain.EventBooking, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.EventBooking
	for _, e := range r.events {
		if !domain.Overlaps(e.StartTime, e.EndTime, start, end) {
			continue
		}
		if excludeID != nil && e.ID == *excludeID {
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

var testStart = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func TestCheckUnitCapacity(t *testing.T) {
	facility := &domain.Facility{ID: 1, Name: "Корт А", CapacityUnits: 8, Active: true}
	end := testStart.Add(2 * time.Hour)

	t.Run("свободных юнитов хватает", func(t *testing.T) {
		unitRepo := &fakeUnitRepo{bookings: []*domain.UnitBooking{
			{ID: 10, FacilityID: 1, StartTime: testStart, EndTime: end, BookedUnits: 3, Status: domain.StatusConfirmed},
		}}
		svc := NewService(unitRepo, &fakeEventRepo{}, nopLogger{})

		res, err := svc.CheckUnitCapacity(context.Background(), facility, testStart, end, 5, nil)
		require.NoError(t, err)

		assert.True(t, res.Available)
		assert.Equal(t, 5, res.AvailableUnits)
		assert.Equal(t, 8, res.CapacityUnits)
	})

	t.Run("свободных юнитов не хватает", func(t *testing.T) {
		unitRepo := &fakeUnitRepo{bookings: []*domain.UnitBooking{
			{ID: 10, FacilityID: 1, StartTime: testStart, EndTime: end, BookedUnits: 3, Status: domain.StatusConfirmed},
		}}
		svc := NewService(unitRepo, &fakeEventRepo{}, nopLogger{})

		res, err := svc.CheckUnitCapacity(context.Background(), facility, testStart, end, 6, nil)
		require.NoError(t, err)

		assert.False(t, res.Available)
		assert.Equal(t, 5, res.AvailableUnits)
	})

	t.Run("событие блокирует площадку целиком", func(t *testing.T) {
		eventRepo := &fakeEventRepo{events: []*domain.EventBooking{
			{ID: 20, FacilityIDs: []int64{1}, StartTime: testStart, EndTime: end, Status: domain.StatusPending},
		}}
		svc := NewService(&fakeUnitRepo{}, eventRepo, nopLogger{})

		res, err := svc.CheckUnitCapacity(context.Background(), facility, testStart, end, 1, nil)
		require.NoError(t, err)

		assert.False(t, res.Available)
		assert.Equal(t, 0, res.AvailableUnits)
	})

	t.Run("бронирование встык не занимает юниты", func(t *testing.T) {
		unitRepo := &fakeUnitRepo{bookings: []*domain.UnitBooking{
			{ID: 10, FacilityID: 1, StartTime: end, EndTime: end.Add(time.Hour), BookedUnits: 8, Status: domain.StatusConfirmed},
		}}
		svc := NewService(unitRepo, &fakeEventRepo{}, nopLogger{})

		res, err := svc.CheckUnitCapacity(context.Background(), facility, testStart, end, 8, nil)
		require.NoError(t, err)

		assert.True(t, res.Available)
		assert.Equal(t, 8, res.AvailableUnits)
	})

	t.Run("excludeUnitID исключает собственное бронирование", func(t *testing.T) {
		unitRepo := &fakeUnitRepo{bookings: []*domain.UnitBooking{
			{ID: 10, FacilityID: 1, StartTime: testStart, EndTime: end, BookedUnits: 8, Status: domain.StatusConfirmed},
		}}
		svc := NewService(unitRepo, &fakeEventRepo{}, nopLogger{})

		excludeID := int64(10)
		res, err := svc.CheckUnitCapacity(context.Background(), facility, testStart, end, 8, &excludeID)
		require.NoError(t, err)

		assert.True(t, res.Available)
		require.NotNil(t, unitRepo.gotExcludeID)
		assert.Equal(t, int64(10), *unitRepo.gotExcludeID)
	})

	t.Run("некорректный интервал", func(t *testing.T) {
		svc := NewService(&fakeUnitRepo{}, &fakeEventRepo{}, nopLogger{})

		_, err := svc.CheckUnitCapacity(context.Background(), facility, end, testStart, 1, nil)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("ошибка репозитория", func(t *testing.T) {
		unitRepo := &fakeUnitRepo{err: errors.New("db down")}
		svc := NewService(unitRepo, &fakeEventRepo{}, nopLogger{})

		_, err := svc.CheckUnitCapacity(context.Background(), facility, testStart, end, 1, nil)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestCheckExclusive(t *testing.T) {
	facilities := []*domain.Facility{
		{ID: 1, Name: "Корт А", CapacityUnits: 8, Active: true},
		{ID: 2, Name: "Корт Б", CapacityUnits: 4, Active: true},
	}
	end := testStart.Add(3 * time.Hour)

	t.Run("все площадки свободны", func(t *testing.T) {
		svc := NewService(&fakeUnitRepo{}, &fakeEventRepo{}, nopLogger{})

		err := svc.CheckExclusive(context.Background(), facilities, testStart, end, nil)
		assert.NoError(t, err)
	})

	t.Run("повременное бронирование даёт конфликт", func(t *testing.T) {
		unitRepo := &fakeUnitRepo{bookings: []*domain.UnitBooking{
			{ID: 10, FacilityID: 2, StartTime: testStart, EndTime: end, BookedUnits: 1, Status: domain.StatusPending},
		}}
		svc := NewService(unitRepo, &fakeEventRepo{}, nopLogger{})

		err := svc.CheckExclusive(context.Background(), facilities, testStart, end, nil)
		require.ErrorIs(t, err, ErrFacilityConflict)
		assert.Contains(t, err.Error(), "Корт Б")
	})

	t.Run("другое событие даёт конфликт", func(t *testing.T) {
		eventRepo := &fakeEventRepo{events: []*domain.EventBooking{
			{ID: 20, FacilityIDs: []int64{1}, StartTime: testStart, EndTime: end, Status: domain.StatusConfirmed},
		}}
		svc := NewService(&fakeUnitRepo{}, eventRepo, nopLogger{})

		err := svc.CheckExclusive(context.Background(), facilities, testStart, end, nil)
		require.ErrorIs(t, err, ErrFacilityConflict)
		assert.Contains(t, err.Error(), "Корт А")
	})

	t.Run("excludeEventID исключает само событие при переносе", func(t *testing.T) {
		eventRepo := &fakeEventRepo{events: []*domain.EventBooking{
			{ID: 20, FacilityIDs: []int64{1, 2}, StartTime: testStart, EndTime: end, Status: domain.StatusConfirmed},
		}}
		svc := NewService(&fakeUnitRepo{}, eventRepo, nopLogger{})

		excludeID := int64(20)
		err := svc.CheckExclusive(context.Background(), facilities, testStart, end, &excludeID)
		assert.NoError(t, err)
	})
}
