package create_unit_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-FacilityService/internal/integrations/membership"
	"github.com/m04kA/SMC-FacilityService/internal/service/availability"
)

type fakeFacilityRepo struct {
	facility *domain.Facility
}

func (r *fakeFacilityRepo) GetByID(_ context.Context, id int64) (*domain.Facility, error) {
	if r.facility == nil || r.facility.ID != id {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	return r.facility, nil
}

type fakeBookingRepo struct {
	created *domain.UnitBooking
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.UnitBooking) (*domain.UnitBooking, error) {
	copied := *booking
	copied.ID = 42
	r.created = &copied
	return &copied, nil
}

type fakeAvailability struct {
	result *availability.UnitCapacityResult
}

func (a *fakeAvailability) CheckUnitCapacity(_ context.Context, facility *domain.Facility, _, _ time.Time, requestedUnits int, _ *int64) (*availability.UnitCapacityResult, error) {
	if a.result != nil {
		return a.result, nil
	}
	return &availability.UnitCapacityResult{
		Available:      true,
		AvailableUnits: facility.CapacityUnits - requestedUnits,
		CapacityUnits:  facility.CapacityUnits,
	}, nil
}

type fakeMembership struct {
	discount *membership.Discount
	err      error
	called   bool
}

func (m *fakeMembership) GetDiscountWithGracefulDegradation(_ context.Context, _ int64) (*membership.Discount, error) {
	m.called = true
	if m.err != nil {
		return nil, m.err
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
	testStart = testNow.Add(48 * time.Hour)
)

type fixture struct {
	uc           *UseCase
	facilityRepo *fakeFacilityRepo
	bookingRepo  *fakeBookingRepo
	availability *fakeAvailability
	membership   *fakeMembership
	publisher    *fakePublisher
}

func newFixture() *fixture {
	f := &fixture{
		facilityRepo: &fakeFacilityRepo{facility: &domain.Facility{
			ID:            1,
			Name:          "Корт А",
			CapacityUnits: 8,
			HourlyRate:    500,
			Active:        true,
		}},
		bookingRepo:  &fakeBookingRepo{},
		availability: &fakeAvailability{},
		membership:   &fakeMembership{err: membership.ErrMemberNotFound},
		publisher:    &fakePublisher{},
	}
	f.uc = NewUseCase(
		f.facilityRepo,
		f.bookingRepo,
		f.availability,
		f.membership,
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
		FacilityID:   1,
		CustomerName: "Иван Петров",
		StartTime:    testStart,
		EndTime:      testStart.Add(2 * time.Hour),
		BookedUnits:  2,
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.AdvanceAmount = 500

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 2 часа × 500/час × 2 юнита
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, 2000.0, resp.TotalAmount)
	assert.Equal(t, 500.0, resp.AdvanceAmount)
	assert.Equal(t, 500.0, resp.PaidAmount)
	assert.Equal(t, 1500.0, resp.BalanceAmount)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, domain.PaymentPartial, resp.PaymentStatus)
	assert.Equal(t, testStart.Add(-24*time.Hour), resp.RemindAt)
	assert.Equal(t, []string{"booking.unit.created"}, f.publisher.keys)
}

func TestExecute_FullAdvanceConfirms(t *testing.T) {
	f := newFixture()
	req := validRequest()
	// Переплата срезается до полной стоимости
	req.AdvanceAmount = 2500

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2000.0, resp.PaidAmount)
	assert.Equal(t, 0.0, resp.BalanceAmount)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Equal(t, domain.PaymentPaid, resp.PaymentStatus)
}

func TestExecute_MembershipDiscount(t *testing.T) {
	f := newFixture()
	f.membership = &fakeMembership{discount: &membership.Discount{UserID: 100, DiscountPercentage: 10}}
	f.uc.membership = f.membership

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1800.0, resp.TotalAmount)
}

func TestExecute_PriceOverrideSkipsDiscount(t *testing.T) {
	f := newFixture()
	f.membership = &fakeMembership{discount: &membership.Discount{UserID: 100, DiscountPercentage: 10}}
	f.uc.membership = f.membership

	override := 1500.0
	req := validRequest()
	req.PriceOverride = &override

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1500.0, resp.TotalAmount)
	assert.False(t, f.membership.called)
}

func TestExecute_MembershipDegradedCreatesWithoutDiscount(t *testing.T) {
	f := newFixture()
	f.membership = &fakeMembership{err: membership.ErrServiceDegraded}
	f.uc.membership = f.membership

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 2000.0, resp.TotalAmount)
}

func TestExecute_InsufficientCapacity(t *testing.T) {
	f := newFixture()
	f.availability.result = &availability.UnitCapacityResult{
		Available:      false,
		AvailableUnits: 1,
		CapacityUnits:  8,
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
	assert.Nil(t, f.bookingRepo.created)
	assert.Empty(t, f.publisher.keys)
}

func TestExecute_UnitsAboveCapacity(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.BookedUnits = 9

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
}

func TestExecute_FacilityInactive(t *testing.T) {
	f := newFixture()
	f.facilityRepo.facility.Active = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrFacilityInactive)
}

func TestExecute_FacilityNotFound(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.FacilityID = 99

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestExecute_StartInPast(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.StartTime = testNow.Add(-time.Hour)
	req.EndTime = testNow.Add(time.Hour)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStartInPast)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"нет имени клиента", func(r *Request) { r.CustomerName = "" }},
		{"ноль юнитов", func(r *Request) { r.BookedUnits = 0 }},
		{"конец раньше начала", func(r *Request) { r.StartTime, r.EndTime = r.EndTime, r.StartTime }},
		{"отрицательный аванс", func(r *Request) { r.AdvanceAmount = -1 }},
		{"отрицательная явная цена", func(r *Request) {
			negative := -100.0
			r.PriceOverride = &negative
		}},
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
