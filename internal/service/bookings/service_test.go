package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/infra/storage/eventbooking"
	"github.com/m04kA/SMC-FacilityService/internal/infra/storage/unitbooking"
)

type fakeUnitRepo struct {
	byID map[int64]*domain.UnitBooking
}

func (r *fakeUnitRepo) GetByID(_ context.Context, id int64) (*domain.UnitBooking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, unitbooking.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeUnitRepo) ListWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.UnitBooking, error) {
	out := make([]*domain.UnitBooking, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeUnitRepo) UpdateStatus(_ context.Context, id int64, status *domain.BookingStatus, paymentStatus *domain.PaymentStatus) error {
	b, ok := r.byID[id]
	if !ok || b.IsTerminal() {
		return unitbooking.ErrBookingNotUpdatable
	}
	if status != nil {
		b.Status = *status
	}
	if paymentStatus != nil {
		b.PaymentStatus = *paymentStatus
	}
	return nil
}

func (r *fakeUnitRepo) UpdatePayment(_ context.Context, id int64, paid, balance float64, paymentStatus domain.PaymentStatus, status *domain.BookingStatus) error {
	b, ok := r.byID[id]
	if !ok || b.IsTerminal() {
		return unitbooking.ErrBookingNotUpdatable
	}
	b.PaidAmount = paid
	b.BalanceAmount = balance
	b.PaymentStatus = paymentStatus
	if status != nil {
		b.Status = *status
	}
	return nil
}

func (r *fakeUnitRepo) Cancel(_ context.Context, id int64, charge, refund float64, paymentStatus domain.PaymentStatus, reason *string, cancelledAt time.Time) error {
	b, ok := r.byID[id]
	if !ok || b.IsTerminal() {
		return unitbooking.ErrBookingNotUpdatable
	}
	b.Status = domain.StatusCancelled
	b.PaymentStatus = paymentStatus
	b.CancellationCharge = charge
	b.RefundAmount = refund
	b.CancellationReason = reason
	b.CancelledAt = &cancelledAt
	return nil
}

type fakeEventRepo struct {
	byID map[int64]*domain.EventBooking
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int64) (*domain.EventBooking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, eventbooking.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeEventRepo) ListWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.EventBooking, error) {
	out := make([]*domain.EventBooking, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeEventRepo) UpdateStatus(_ context.Context, id int64, status *domain.BookingStatus, paymentStatus *domain.PaymentStatus) error {
	b, ok := r.byID[id]
	if !ok || b.IsTerminal() {
		return eventbooking.ErrBookingNotUpdatable
	}
	if status != nil {
		b.Status = *status
	}
	if paymentStatus != nil {
		b.PaymentStatus = *paymentStatus
	}
	return nil
}

func (r *fakeEventRepo) UpdatePayment(_ context.Context, id int64, paid, balance float64, paymentStatus domain.PaymentStatus, status *domain.BookingStatus) error {
	b, ok := r.byID[id]
	if !ok || b.IsTerminal() {
		return eventbooking.ErrBookingNotUpdatable
	}
	b.PaidAmount = paid
	b.BalanceAmount = balance
	b.PaymentStatus = paymentStatus
	if status != nil {
		b.Status = *status
	}
	return nil
}

func (r *fakeEventRepo) Cancel(_ context.Context, id int64, charge, refund float64, paymentStatus domain.PaymentStatus, reason *string, cancelledAt time.Time) error {
	b, ok := r.byID[id]
	if !ok || b.IsTerminal() {
		return eventbooking.ErrBookingNotUpdatable
	}
	b.Status = domain.StatusCancelled
	b.PaymentStatus = paymentStatus
	b.CancellationCharge = charge
	b.RefundAmount = refund
	b.CancellationReason = reason
	b.CancelledAt = &cancelledAt
	return nil
}

type fakeRescheduleRepo struct {
	entries []*domain.RescheduleEntry
}

func (r *fakeRescheduleRepo) ListByBooking(_ context.Context, kind domain.BookingKind, bookingID int64) ([]*domain.RescheduleEntry, error) {
	var out []*domain.RescheduleEntry
	for _, e := range r.entries {
		if e.Kind == kind && e.BookingID == bookingID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakePublisher struct {
	keys []string
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, _ interface{}) error {
	p.keys = append(p.keys, routingKey)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var bookingStart = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc       *Service
	unitRepo  *fakeUnitRepo
	eventRepo *fakeEventRepo
	history   *fakeRescheduleRepo
	clock     *fakeClock
	publisher *fakePublisher
}

func newFixture() *fixture {
	f := &fixture{
		unitRepo:  &fakeUnitRepo{byID: map[int64]*domain.UnitBooking{}},
		eventRepo: &fakeEventRepo{byID: map[int64]*domain.EventBooking{}},
		history:   &fakeRescheduleRepo{},
		clock:     &fakeClock{now: bookingStart.Add(-48 * time.Hour)},
		publisher: &fakePublisher{},
	}
	f.svc = NewService(
		f.unitRepo,
		f.eventRepo,
		f.history,
		fakeTxManager{},
		domain.DefaultCancellationPolicy(),
		f.clock,
		f.publisher,
		nopLogger{},
	)
	return f
}

func (f *fixture) addUnit(id int64, status domain.BookingStatus, total, paid float64) {
	f.unitRepo.byID[id] = &domain.UnitBooking{
		ID:            id,
		FacilityID:    1,
		UserID:        100,
		CustomerName:  "Иван Петров",
		StartTime:     bookingStart,
		EndTime:       bookingStart.Add(2 * time.Hour),
		BookedUnits:   2,
		Status:        status,
		PaymentStatus: domain.DerivePaymentStatus(paid, total, false),
		TotalAmount:   total,
		PaidAmount:    paid,
		BalanceAmount: domain.Balance(total, paid),
	}
}

func (f *fixture) addEvent(id int64, status domain.BookingStatus, total, paid float64) {
	f.eventRepo.byID[id] = &domain.EventBooking{
		ID:            id,
		UserID:        100,
		EventName:     "Корпоратив",
		CustomerName:  "Иван Петров",
		FacilityIDs:   []int64{1, 2},
		StartTime:     bookingStart,
		EndTime:       bookingStart.Add(4 * time.Hour),
		Status:        status,
		PaymentStatus: domain.DerivePaymentStatus(paid, total, false),
		TotalAmount:   total,
		PaidAmount:    paid,
		BalanceAmount: domain.Balance(total, paid),
	}
}

func TestGetByID(t *testing.T) {
	t.Run("бронирование с историей переносов", func(t *testing.T) {
		f := newFixture()
		f.addUnit(1, domain.StatusConfirmed, 1000, 0)
		f.history.entries = []*domain.RescheduleEntry{
			{ID: 1, Kind: domain.KindUnit, BookingID: 1, ChangedBy: 100},
		}

		booking, err := f.svc.GetByID(context.Background(), domain.KindUnit, 1)
		require.NoError(t, err)

		assert.Equal(t, domain.KindUnit, booking.Kind)
		assert.Len(t, booking.History, 1)
	})

	t.Run("бронирование не найдено", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.GetByID(context.Background(), domain.KindUnit, 99)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("смена статуса публикует событие", func(t *testing.T) {
		f := newFixture()
		f.addUnit(1, domain.StatusPending, 1000, 0)

		status := domain.StatusConfirmed
		booking, err := f.svc.UpdateStatus(context.Background(), domain.KindUnit, 1, &status, nil)
		require.NoError(t, err)

		assert.Equal(t, domain.StatusConfirmed, booking.Unit.Status)
		assert.Equal(t, []string{"booking.unit.status_changed"}, f.publisher.keys)
	})

	t.Run("отмена через смену статуса запрещена", func(t *testing.T) {
		f := newFixture()
		f.addUnit(1, domain.StatusPending, 1000, 0)

		status := domain.StatusCancelled
		_, err := f.svc.UpdateStatus(context.Background(), domain.KindUnit, 1, &status, nil)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("статус booked недопустим для событий", func(t *testing.T) {
		f := newFixture()
		f.addEvent(1, domain.StatusPending, 1000, 0)

		status := domain.StatusBooked
		_, err := f.svc.UpdateStatus(context.Background(), domain.KindEvent, 1, &status, nil)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("пустое обновление отклоняется", func(t *testing.T) {
		f := newFixture()
		f.addUnit(1, domain.StatusPending, 1000, 0)

		_, err := f.svc.UpdateStatus(context.Background(), domain.KindUnit, 1, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("завершённое бронирование не меняется", func(t *testing.T) {
		f := newFixture()
		f.addUnit(1, domain.StatusCompleted, 1000, 1000)

		status := domain.StatusConfirmed
		_, err := f.svc.UpdateStatus(context.Background(), domain.KindUnit, 1, &status, nil)
		assert.ErrorIs(t, err, ErrTerminalState)
		assert.Empty(t, f.publisher.keys)
	})
}

func TestRecordPayment(t *testing.T) {
	t.Run("частичная оплата", func(t *testing.T) {
		f := newFixture()
		f.addUnit(1, domain.StatusConfirmed, 500, 0)

		booking, err := f.svc.RecordPayment(context.Background(), domain.KindUnit, 1, 200)
		require.NoError(t, err)

		assert.Equal(t, 200.0, booking.Unit.PaidAmount)
		assert.Equal(t, 300.0, booking.Unit.BalanceAmount)
		assert.Equal(t, domain.PaymentPartial, booking.Unit.PaymentStatus)
		assert.Equal(t, []string{"booking.unit.payment_recorded"}, f.publisher.keys)
	})

	t.Run("переплата срезается до полной стоимости", func(t *testing.T) {
		f := newFixture()
		f.addUnit(1, domain.StatusConfirmed, 300, 0)

		booking, err := f.svc.RecordPayment(context.Background(), domain.KindUnit, 1, 500)
		require.NoError(t, err)

		assert.Equal(t, 300.0, booking.Unit.PaidAmount)
		assert.Equal(t, 0.0, booking.Unit.BalanceAmount)
		assert.Equal(t, domain.PaymentPaid, booking.Unit.PaymentStatus)
	})

	t.Run("первый платёж подтверждает событие", func(t *testing.T) {
		f := newFixture()
		f.addEvent(1, domain.StatusPending, 2000, 0)

		booking, err := f.svc.RecordPayment(context.Background(), domain.KindEvent, 1, 500)
		require.NoError(t, err)

		assert.Equal(t, domain.StatusConfirmed, booking.Event.Status)
		assert.Equal(t, domain.PaymentPartial, booking.Event.PaymentStatus)
	})

	t.Run("платёж по отменённому бронированию запрещён", func(t *testing.T) {
		f := newFixture()
		f.addUnit(1, domain.StatusCancelled, 500, 0)

		_, err := f.svc.RecordPayment(context.Background(), domain.KindUnit, 1, 100)
		assert.ErrorIs(t, err, ErrPaymentOnCancelled)
	})

	t.Run("неположительная сумма отклоняется", func(t *testing.T) {
		f := newFixture()
		f.addUnit(1, domain.StatusConfirmed, 500, 0)

		_, err := f.svc.RecordPayment(context.Background(), domain.KindUnit, 1, 0)
		assert.ErrorIs(t, err, ErrInvalidPayment)

		_, err = f.svc.RecordPayment(context.Background(), domain.KindUnit, 1, -50)
		assert.ErrorIs(t, err, ErrInvalidPayment)
	})
}

func TestCancel(t *testing.T) {
	t.Run("отмена за 10 часов удерживает половину", func(t *testing.T) {
		f := newFixture()
		f.addUnit(1, domain.StatusConfirmed, 1000, 800)
		f.clock.now = bookingStart.Add(-10 * time.Hour)

		reason := "изменились планы"
		booking, err := f.svc.Cancel(context.Background(), domain.KindUnit, 1, &reason)
		require.NoError(t, err)

		assert.Equal(t, domain.StatusCancelled, booking.Unit.Status)
		assert.Equal(t, 500.0, booking.Unit.CancellationCharge)
		assert.Equal(t, 300.0, booking.Unit.RefundAmount)
		assert.Equal(t, domain.PaymentRefunded, booking.Unit.PaymentStatus)
		require.NotNil(t, booking.Unit.CancelledAt)
		assert.Equal(t, f.clock.now, *booking.Unit.CancelledAt)
		require.NotNil(t, booking.Unit.CancellationReason)
		assert.Equal(t, reason, *booking.Unit.CancellationReason)
		assert.Equal(t, []string{"booking.unit.cancelled"}, f.publisher.keys)
	})

	t.Run("поздняя отмена события удерживает всю стоимость", func(t *testing.T) {
		f := newFixture()
		f.addEvent(1, domain.StatusConfirmed, 2000, 2000)
		f.clock.now = bookingStart.Add(-time.Hour)

		booking, err := f.svc.Cancel(context.Background(), domain.KindEvent, 1, nil)
		require.NoError(t, err)

		assert.Equal(t, 2000.0, booking.Event.CancellationCharge)
		assert.Equal(t, 0.0, booking.Event.RefundAmount)
		assert.Equal(t, domain.PaymentPaid, booking.Event.PaymentStatus)
	})

	t.Run("повторная отмена отклоняется", func(t *testing.T) {
		f := newFixture()
		f.addUnit(1, domain.StatusConfirmed, 1000, 0)

		_, err := f.svc.Cancel(context.Background(), domain.KindUnit, 1, nil)
		require.NoError(t, err)

		_, err = f.svc.Cancel(context.Background(), domain.KindUnit, 1, nil)
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
	})

	t.Run("завершённое бронирование не отменяется", func(t *testing.T) {
		f := newFixture()
		f.addUnit(1, domain.StatusCompleted, 1000, 1000)

		_, err := f.svc.Cancel(context.Background(), domain.KindUnit, 1, nil)
		assert.ErrorIs(t, err, ErrTerminalState)
	})
}
