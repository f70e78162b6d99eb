package create_event_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/integrations/membership"
	"github.com/m04kA/SMC-FacilityService/internal/service/availability"
)

type fakeFacilityRepo struct {
	facilities map[int64]*domain.Facility
}

func (r *fakeFacilityRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Facility, error) {
	var out []*domain.Facility
	for _, id := range ids {
		if f, ok := r.facilities[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

type fakeBookingRepo struct {
	created *domain.EventBooking
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.EventBooking) (*domain.EventBooking, error) {
	copied := *booking
	copied.ID = 77
	r.created = &copied
	return &copied, nil
}

type fakeAvailability struct {
	conflictFacility string
}

func (a *fakeAvailability) CheckExclusive(_ context.Context, _ []*domain.Facility, _, _ time.Time, _ *int64) error {
	if a.conflictFacility != "" {
		return fmt.Errorf("%w: facility %q is reserved by another event", availability.ErrFacilityConflict, a.conflictFacility)
	}
	return nil
}

type fakeMembership struct {
	discount *membership.Discount
}

func (m *fakeMembership) GetDiscountWithGracefulDegradation(_ context.Context, _ int64) (*membership.Discount, error) {
	if m.discount == nil {
		return nil, membership.ErrMemberNotFound
	}
	return m.discount, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	keys []string
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, _ interface{}) error {
	p.keys = append(p.keys, routingKey)
	return nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	testNow   = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	testStart = testNow.Add(72 * time.Hour)
)

type fixture struct {
	uc           *UseCase
	facilityRepo *fakeFacilityRepo
	bookingRepo  *fakeBookingRepo
	availability *fakeAvailability
	publisher    *fakePublisher
}

func newFixture() *fixture {
	f := &fixture{
		facilityRepo: &fakeFacilityRepo{facilities: map[int64]*domain.Facility{
			1: {ID: 1, Name: "Корт А", CapacityUnits: 8, HourlyRate: 500, Active: true},
			2: {ID: 2, Name: "Корт Б", CapacityUnits: 4, HourlyRate: 300, Active: true},
		}},
		bookingRepo:  &fakeBookingRepo{},
		availability: &fakeAvailability{},
		publisher:    &fakePublisher{},
	}
	f.uc = NewUseCase(
		f.facilityRepo,
		f.bookingRepo,
		f.availability,
		&fakeMembership{},
		fakeTxManager{},
		f.publisher,
		24*time.Hour,
		nopLogger{},
	)
	f.uc.timeProvider = &fakeClock{now: testNow}
	return f
}

func validRequest() *Request {
	return &Request{
		UserID:       100,
		EventName:    "Корпоратив",
		CustomerName: "Иван Петров",
		FacilityIDs:  []int64{1, 2},
		StartTime:    testStart,
		EndTime:      testStart.Add(4 * time.Hour),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// (500 + 300) × 4 часа
	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, 3200.0, resp.TotalAmount)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, domain.PaymentPending, resp.PaymentStatus)
	assert.Equal(t, []int64{1, 2}, resp.FacilityIDs)
	assert.Equal(t, testStart.Add(-24*time.Hour), resp.RemindAt)
	assert.Equal(t, []string{"booking.event.created"}, f.publisher.keys)
}

func TestExecute_DiscountApplied(t *testing.T) {
	f := newFixture()
	f.uc.membership = &fakeMembership{discount: &membership.Discount{UserID: 100, DiscountPercentage: 25}}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 2400.0, resp.TotalAmount)
}

func TestExecute_FullAdvanceConfirms(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.AdvanceAmount = 3200

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Equal(t, domain.PaymentPaid, resp.PaymentStatus)
	assert.Equal(t, 0.0, resp.BalanceAmount)
}

func TestExecute_FacilityConflict(t *testing.T) {
	f := newFixture()
	f.availability.conflictFacility = "Корт Б"

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrFacilityConflict)
	assert.Contains(t, err.Error(), "Корт Б")
	assert.Nil(t, f.bookingRepo.created)
	assert.Empty(t, f.publisher.keys)
}

func TestExecute_FacilityNotFound(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.FacilityIDs = []int64{1, 99}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestExecute_FacilityInactive(t *testing.T) {
	f := newFixture()
	f.facilityRepo.facilities[2].Active = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrFacilityInactive)
	assert.Contains(t, err.Error(), "Корт Б")
}

func TestExecute_StartInPast(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.StartTime = testNow.Add(-time.Hour)
	req.EndTime = testNow.Add(3 * time.Hour)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStartInPast)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"нет названия события", func(r *Request) { r.EventName = "" }},
		{"пустой список объектов", func(r *Request) { r.FacilityIDs = nil }},
		{"повторяющиеся объекты", func(r *Request) { r.FacilityIDs = []int64{1, 1} }},
		{"конец раньше начала", func(r *Request) { r.StartTime, r.EndTime = r.EndTime, r.StartTime }},
		{"отрицательный аванс", func(r *Request) { r.AdvanceAmount = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
