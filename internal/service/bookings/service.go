// Package bookings реализует операции над существующими бронированиями:
// чтение, смену статусов, учет платежей и отмену.
//
// Каждая мутация выполняется в транзакции: строка перечитывается с блокировкой
// (FOR UPDATE), проверяется, и только затем обновляется. Guard по терминальным
// статусам продублирован в WHERE запроса, поэтому конкурентное обновление
// не может изменить завершённое или отменённое бронирование.
package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/infra/queue"
	"github.com/m04kA/SMC-FacilityService/internal/infra/storage/eventbooking"
	"github.com/m04kA/SMC-FacilityService/internal/infra/storage/unitbooking"
	"github.com/m04kA/SMC-FacilityService/internal/service/bookings/models"
	"github.com/m04kA/SMC-FacilityService/pkg/ptr"
)

// Service сервис операций над бронированиями
type Service struct {
	unitRepo       UnitBookingRepo
	eventRepo      EventBookingRepo
	rescheduleRepo RescheduleLogRepo
	txManager      TxManager
	policy         domain.CancellationPolicy
	clock          TimeProvider
	publisher      EventPublisher
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	unitRepo UnitBookingRepo,
	eventRepo EventBookingRepo,
	rescheduleRepo RescheduleLogRepo,
	txManager TxManager,
	policy domain.CancellationPolicy,
	clock TimeProvider,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		unitRepo:       unitRepo,
		eventRepo:      eventRepo,
		rescheduleRepo: rescheduleRepo,
		txManager:      txManager,
		policy:         policy,
		clock:          clock,
		publisher:      publisher,
		logger:         logger,
	}
}

// GetByID получает бронирование вместе с историей переносов
func (s *Service) GetByID(ctx context.Context, kind domain.BookingKind, id int64) (*models.Booking, error) {
	booking, err := s.getByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	history, err := s.rescheduleRepo.ListByBooking(ctx, kind, id)
	if err != nil {
		s.logger.Error("bookings.GetByID: failed to load reschedule history for %s booking %d: %v", kind, id, err)
		return nil, fmt.Errorf("%w: GetByID - load reschedule history: %v", ErrInternal, err)
	}
	booking.History = history

	return booking, nil
}

// List получает бронирования по фильтру. История переносов в список не
// включается, её отдает GetByID.
func (s *Service) List(ctx context.Context, kind domain.BookingKind, filter domain.BookingsFilter) ([]*models.Booking, error) {
	switch kind {
	case domain.KindUnit:
		items, err := s.unitRepo.ListWithFilter(ctx, filter)
		if err != nil {
			s.logger.Error("bookings.List: failed to list unit bookings: %v", err)
			return nil, fmt.Errorf("%w: List - list unit bookings: %v", ErrInternal, err)
		}
		result := make([]*models.Booking, 0, len(items))
		for _, b := range items {
			result = append(result, &models.Booking{Kind: domain.KindUnit, Unit: b})
		}
		return result, nil
	default:
		items, err := s.eventRepo.ListWithFilter(ctx, filter)
		if err != nil {
			s.logger.Error("bookings.List: failed to list event bookings: %v", err)
			return nil, fmt.Errorf("%w: List - list event bookings: %v", ErrInternal, err)
		}
		result := make([]*models.Booking, 0, len(items))
		for _, b := range items {
			result = append(result, &models.Booking{Kind: domain.KindEvent, Event: b})
		}
		return result, nil
	}
}

// UpdateStatus изменяет статус и/или платёжный статус бронирования.
// Отмена через эту операцию запрещена: у отмены своя логика удержаний.
func (s *Service) UpdateStatus(ctx context.Context, kind domain.BookingKind, id int64, status *domain.BookingStatus, paymentStatus *domain.PaymentStatus) (*models.Booking, error) {
	if status == nil && paymentStatus == nil {
		return nil, fmt.Errorf("%w: UpdateStatus - nothing to update", ErrInvalidStatus)
	}
	if status != nil {
		if *status == domain.StatusCancelled {
			return nil, fmt.Errorf("%w: UpdateStatus - use cancellation operation instead", ErrInvalidStatus)
		}
		if kind == domain.KindUnit && !domain.ValidUnitStatus(*status) {
			return nil, fmt.Errorf("%w: UpdateStatus - status %q is not valid for unit bookings", ErrInvalidStatus, *status)
		}
		if kind == domain.KindEvent && !domain.ValidEventStatus(*status) {
			return nil, fmt.Errorf("%w: UpdateStatus - status %q is not valid for event bookings", ErrInvalidStatus, *status)
		}
	}
	if paymentStatus != nil && !domain.ValidPaymentStatus(*paymentStatus) {
		return nil, fmt.Errorf("%w: UpdateStatus - unknown payment status %q", ErrInvalidStatus, *paymentStatus)
	}

	var updated *models.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getByID(ctx, kind, id)
		if err != nil {
			return err
		}
		if booking.Status() == domain.StatusCancelled || booking.Status() == domain.StatusCompleted {
			return fmt.Errorf("%w: UpdateStatus - booking %d is %s", ErrTerminalState, id, booking.Status())
		}

		if err := s.updateStatus(ctx, kind, id, status, paymentStatus); err != nil {
			return err
		}

		updated, err = s.getByID(ctx, kind, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, queue.RoutingKey(kind, queue.ActionStatusChanged), queue.StatusChangedEvent{
		Kind:          kind,
		BookingID:     id,
		Status:        status,
		PaymentStatus: paymentStatus,
	})

	return updated, nil
}

// RecordPayment учитывает платёж по бронированию. Переплата срезается до
// полной стоимости, платёжный статус выводится из сумм. Событийное
// бронирование в статусе pending подтверждается первым платежом.
func (s *Service) RecordPayment(ctx context.Context, kind domain.BookingKind, id int64, amount float64) (*models.Booking, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: RecordPayment - got %.2f", ErrInvalidPayment, amount)
	}

	var updated *models.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getByID(ctx, kind, id)
		if err != nil {
			return err
		}

		var total, paid float64
		var newStatus *domain.BookingStatus
		switch kind {
		case domain.KindUnit:
			if !booking.Unit.CanAcceptPayment() {
				return fmt.Errorf("%w: RecordPayment - booking %d", ErrPaymentOnCancelled, id)
			}
			total, paid = booking.Unit.TotalAmount, booking.Unit.PaidAmount
		default:
			if !booking.Event.CanAcceptPayment() {
				return fmt.Errorf("%w: RecordPayment - booking %d", ErrPaymentOnCancelled, id)
			}
			total, paid = booking.Event.TotalAmount, booking.Event.PaidAmount
			if booking.Event.Status == domain.StatusPending {
				newStatus = ptr.Ptr(domain.StatusConfirmed)
			}
		}

		newPaid := domain.ClampPayment(paid+amount, total)
		balance := domain.Balance(total, newPaid)
		paymentStatus := domain.DerivePaymentStatus(newPaid, total, false)

		if err := s.updatePayment(ctx, kind, id, newPaid, balance, paymentStatus, newStatus); err != nil {
			return err
		}

		updated, err = s.getByID(ctx, kind, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	payload := queue.PaymentRecordedEvent{
		Kind:      kind,
		BookingID: id,
		Amount:    amount,
	}
	if updated.Kind == domain.KindUnit {
		payload.PaidAmount = updated.Unit.PaidAmount
		payload.BalanceAmount = updated.Unit.BalanceAmount
		payload.PaymentStatus = updated.Unit.PaymentStatus
	} else {
		payload.PaidAmount = updated.Event.PaidAmount
		payload.BalanceAmount = updated.Event.BalanceAmount
		payload.PaymentStatus = updated.Event.PaymentStatus
	}
	s.publish(ctx, queue.RoutingKey(kind, queue.ActionPaymentRecorded), payload)

	return updated, nil
}

// Cancel отменяет бронирование. Удержание зависит от того, за сколько до
// начала пришла отмена; возврат считается от фактически оплаченной суммы.
func (s *Service) Cancel(ctx context.Context, kind domain.BookingKind, id int64, reason *string) (*models.Booking, error) {
	var updated *models.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getByID(ctx, kind, id)
		if err != nil {
			return err
		}

		switch booking.Status() {
		case domain.StatusCancelled:
			return fmt.Errorf("%w: Cancel - booking %d", ErrAlreadyCancelled, id)
		case domain.StatusCompleted:
			return fmt.Errorf("%w: Cancel - booking %d is completed", ErrTerminalState, id)
		}

		now := s.clock.Now()

		var total, paid float64
		var outcome domain.CancellationOutcome
		if kind == domain.KindUnit {
			total, paid = booking.Unit.TotalAmount, booking.Unit.PaidAmount
			outcome = s.policy.Apply(now, booking.Unit.StartTime, total, paid)
		} else {
			total, paid = booking.Event.TotalAmount, booking.Event.PaidAmount
			outcome = s.policy.Apply(now, booking.Event.StartTime, total, paid)
		}

		if err := s.cancel(ctx, kind, id, outcome.CancellationCharge, outcome.RefundAmount, outcome.PaymentStatus, reason, now); err != nil {
			return err
		}

		updated, err = s.getByID(ctx, kind, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	payload := queue.BookingCancelledEvent{
		Kind:      kind,
		BookingID: id,
	}
	if updated.Kind == domain.KindUnit {
		payload.CancellationCharge = updated.Unit.CancellationCharge
		payload.RefundAmount = updated.Unit.RefundAmount
		if updated.Unit.CancelledAt != nil {
			payload.CancelledAt = *updated.Unit.CancelledAt
		}
	} else {
		payload.CancellationCharge = updated.Event.CancellationCharge
		payload.RefundAmount = updated.Event.RefundAmount
		if updated.Event.CancelledAt != nil {
			payload.CancelledAt = *updated.Event.CancelledAt
		}
	}
	s.publish(ctx, queue.RoutingKey(kind, queue.ActionCancelled), payload)

	return updated, nil
}

// getByID читает бронирование нужного вида, приводя ошибки репозитория
// к ошибкам сервиса
func (s *Service) getByID(ctx context.Context, kind domain.BookingKind, id int64) (*models.Booking, error) {
	switch kind {
	case domain.KindUnit:
		b, err := s.unitRepo.GetByID(ctx, id)
		if errors.Is(err, unitbooking.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: unit booking %d", ErrBookingNotFound, id)
		}
		if err != nil {
			s.logger.Error("bookings.getByID: failed to get unit booking %d: %v", id, err)
			return nil, fmt.Errorf("%w: getByID - get unit booking: %v", ErrInternal, err)
		}
		return &models.Booking{Kind: domain.KindUnit, Unit: b}, nil
	default:
		b, err := s.eventRepo.GetByID(ctx, id)
		if errors.Is(err, eventbooking.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: event booking %d", ErrBookingNotFound, id)
		}
		if err != nil {
			s.logger.Error("bookings.getByID: failed to get event booking %d: %v", id, err)
			return nil, fmt.Errorf("%w: getByID - get event booking: %v", ErrInternal, err)
		}
		return &models.Booking{Kind: domain.KindEvent, Event: b}, nil
	}
}

func (s *Service) updateStatus(ctx context.Context, kind domain.BookingKind, id int64, status *domain.BookingStatus, paymentStatus *domain.PaymentStatus) error {
	var err error
	if kind == domain.KindUnit {
		err = s.unitRepo.UpdateStatus(ctx, id, status, paymentStatus)
	} else {
		err = s.eventRepo.UpdateStatus(ctx, id, status, paymentStatus)
	}
	return s.mapUpdateErr(err, "updateStatus", id)
}

func (s *Service) updatePayment(ctx context.Context, kind domain.BookingKind, id int64, paid, balance float64, paymentStatus domain.PaymentStatus, status *domain.BookingStatus) error {
	var err error
	if kind == domain.KindUnit {
		err = s.unitRepo.UpdatePayment(ctx, id, paid, balance, paymentStatus, status)
	} else {
		err = s.eventRepo.UpdatePayment(ctx, id, paid, balance, paymentStatus, status)
	}
	return s.mapUpdateErr(err, "updatePayment", id)
}

func (s *Service) cancel(ctx context.Context, kind domain.BookingKind, id int64, charge, refund float64, paymentStatus domain.PaymentStatus, reason *string, cancelledAt time.Time) error {
	var err error
	if kind == domain.KindUnit {
		err = s.unitRepo.Cancel(ctx, id, charge, refund, paymentStatus, reason, cancelledAt)
	} else {
		err = s.eventRepo.Cancel(ctx, id, charge, refund, paymentStatus, reason, cancelledAt)
	}
	return s.mapUpdateErr(err, "cancel", id)
}

// mapUpdateErr приводит ErrBookingNotUpdatable к ErrTerminalState: к этому
// моменту строка уже была прочитана под блокировкой, значит она существует
func (s *Service) mapUpdateErr(err error, op string, id int64) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, unitbooking.ErrBookingNotUpdatable) || errors.Is(err, eventbooking.ErrBookingNotUpdatable) {
		return fmt.Errorf("%w: %s - booking %d", ErrTerminalState, op, id)
	}
	s.logger.Error("bookings.%s: failed to update booking %d: %v", op, id, err)
	return fmt.Errorf("%w: %s - update booking: %v", ErrInternal, op, err)
}

// publish отправляет событие в очередь. Ошибка публикации не откатывает
// уже зафиксированную транзакцию, только логируется.
func (s *Service) publish(ctx context.Context, routingKey string, payload interface{}) {
	if err := s.publisher.Publish(ctx, routingKey, payload); err != nil {
		s.logger.Warn("bookings.publish: failed to publish %s: %v", routingKey, err)
	}
}
