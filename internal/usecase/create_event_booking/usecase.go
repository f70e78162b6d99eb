package create_event_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/infra/queue"
	membershipClient "github.com/m04kA/SMC-FacilityService/internal/integrations/membership"
	"github.com/m04kA/SMC-FacilityService/internal/service/availability"
	"github.com/m04kA/SMC-FacilityService/pkg/money"
)

// UseCase use case для создания событийного бронирования
type UseCase struct {
	facilityRepo   FacilityRepository
	bookingRepo    EventBookingRepository
	availability   AvailabilityChecker
	membership     MembershipClient
	txManager      TransactionManager
	publisher      EventPublisher
	timeProvider   TimeProvider
	reminderOffset time.Duration
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	facilityRepo FacilityRepository,
	bookingRepo EventBookingRepository,
	availability AvailabilityChecker,
	membership MembershipClient,
	txManager TransactionManager,
	publisher EventPublisher,
	reminderOffset time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		facilityRepo:   facilityRepo,
		bookingRepo:    bookingRepo,
		availability:   availability,
		membership:     membership,
		txManager:      txManager,
		publisher:      publisher,
		timeProvider:   &RealTimeProvider{},
		reminderOffset: reminderOffset,
		logger:         logger,
	}
}

// Execute выполняет use case создания событийного бронирования.
// Событие занимает все перечисленные объекты целиком: любое активное
// бронирование на любом из них в этом интервале даёт конфликт. Проверка
// и запись выполняются в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateEventBooking: user=%d, facilities=%v, interval=[%s, %s)",
		req.UserID, req.FacilityIDs, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateEventBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateStart(req.StartTime, now); err != nil {
		uc.logger.Warn("CreateEventBooking: start time %s is in the past", req.StartTime.Format(time.RFC3339))
		return nil, err
	}

	// 2. Скидка программы лояльности
	discountPct := uc.resolveDiscount(ctx, req)

	var result *domain.EventBooking

	// 3. Проверка эксклюзивной доступности и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		facilities, err := uc.loadFacilities(txCtx, req.FacilityIDs)
		if err != nil {
			return err
		}

		err = uc.availability.CheckExclusive(txCtx, facilities, req.StartTime, req.EndTime, nil)
		if err != nil {
			if errors.Is(err, availability.ErrFacilityConflict) {
				uc.logger.Warn("CreateEventBooking: conflict: %v", err)
				return fmt.Errorf("%w: %v", ErrFacilityConflict, err)
			}
			uc.logger.Error("CreateEventBooking: exclusivity check failed: %v", err)
			return fmt.Errorf("%w: exclusivity check failed: %v", ErrInternal, err)
		}

		// Стоимость фиксируется на момент создания
		var total float64
		if req.PriceOverride != nil {
			total = money.Round2(*req.PriceOverride)
		} else {
			total = domain.ApplyDiscount(
				domain.EventBookingAmount(facilities, req.StartTime, req.EndTime),
				discountPct,
			)
		}

		advance := domain.ClampPayment(money.Round2(req.AdvanceAmount), total)
		paymentStatus := domain.DerivePaymentStatus(advance, total, false)

		status := domain.StatusPending
		if paymentStatus == domain.PaymentPaid {
			status = domain.StatusConfirmed
		}

		booking := &domain.EventBooking{
			UserID:        req.UserID,
			EventName:     req.EventName,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			FacilityIDs:   req.FacilityIDs,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			Status:        status,
			PaymentStatus: paymentStatus,
			TotalAmount:   total,
			AdvanceAmount: advance,
			PaidAmount:    advance,
			BalanceAmount: domain.Balance(total, advance),
			RemindAt:      req.StartTime.Add(-uc.reminderOffset),
			Notes:         req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateEventBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateEventBooking: successfully created booking id=%d, total=%.2f", result.ID, result.TotalAmount)

	uc.publishCreated(ctx, result)

	return toResponse(result), nil
}

// loadFacilities получает объекты и возвращает их в порядке запроса.
// Порядок важен: при конфликте ошибка указывает на первый занятый объект
// из списка клиента, а не из произвольной сортировки БД.
func (uc *UseCase) loadFacilities(ctx context.Context, ids []int64) ([]*domain.Facility, error) {
	found, err := uc.facilityRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("CreateEventBooking: failed to get facilities %v: %v", ids, err)
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
			uc.logger.Warn("CreateEventBooking: facility id=%d not found", id)
			return nil, fmt.Errorf("%w: facility %d", ErrFacilityNotFound, id)
		}
		if !f.AcceptsNewBookings() {
			uc.logger.Warn("CreateEventBooking: facility id=%d is inactive", id)
			return nil, fmt.Errorf("%w: facility %q", ErrFacilityInactive, f.Name)
		}
		facilities = append(facilities, f)
	}

	return facilities, nil
}

// resolveDiscount возвращает процент скидки пользователя.
// Недоступность MembershipService не блокирует создание
func (uc *UseCase) resolveDiscount(ctx context.Context, req *Request) float64 {
	if req.PriceOverride != nil {
		return 0
	}

	discount, err := uc.membership.GetDiscountWithGracefulDegradation(ctx, req.UserID)
	if err != nil {
		if !errors.Is(err, membershipClient.ErrMemberNotFound) {
			uc.logger.Warn("CreateEventBooking: membership discount unavailable for user=%d: %v", req.UserID, err)
		}
		return 0
	}

	return discount.DiscountPercentage
}

func (uc *UseCase) publishCreated(ctx context.Context, b *domain.EventBooking) {
	err := uc.publisher.Publish(ctx, queue.RoutingKey(domain.KindEvent, queue.ActionCreated), queue.BookingCreatedEvent{
		Kind:        domain.KindEvent,
		BookingID:   b.ID,
		UserID:      b.UserID,
		FacilityIDs: b.FacilityIDs,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		TotalAmount: b.TotalAmount,
		Status:      b.Status,
	})
	if err != nil {
		uc.logger.Warn("CreateEventBooking: failed to publish created event for booking id=%d: %v", b.ID, err)
	}
}

func toResponse(b *domain.EventBooking) *Response {
	return &Response{
		ID:            b.ID,
		UserID:        b.UserID,
		EventName:     b.EventName,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		FacilityIDs:   b.FacilityIDs,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		TotalAmount:   b.TotalAmount,
		AdvanceAmount: b.AdvanceAmount,
		PaidAmount:    b.PaidAmount,
		BalanceAmount: b.BalanceAmount,
		RemindAt:      b.RemindAt,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
