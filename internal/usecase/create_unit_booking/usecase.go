package create_unit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/infra/queue"
	facilityRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/facility"
	membershipClient "github.com/m04kA/SMC-FacilityService/internal/integrations/membership"
	"github.com/m04kA/SMC-FacilityService/pkg/money"
)

// UseCase use case для создания юнитного бронирования
type UseCase struct {
	facilityRepo    FacilityRepository
	bookingRepo     UnitBookingRepository
	availability    AvailabilityChecker
	membership      MembershipClient
	txManager       TransactionManager
	publisher       EventPublisher
	timeProvider    TimeProvider
	reminderOffset  time.Duration
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	facilityRepo FacilityRepository,
	bookingRepo UnitBookingRepository,
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

// Execute выполняет use case создания юнитного бронирования.
// Проверка вместимости и запись выполняются в сериализуемой транзакции:
// две конкурентные брони на последние юниты не могут пройти обе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateUnitBooking: user=%d, facility=%d, interval=[%s, %s), units=%d",
		req.UserID, req.FacilityID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339), req.BookedUnits)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateUnitBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateStart(req.StartTime, now); err != nil {
		uc.logger.Warn("CreateUnitBooking: start time %s is in the past", req.StartTime.Format(time.RFC3339))
		return nil, err
	}

	// 2. Скидка программы лояльности. При явной цене не запрашивается:
	// priceOverride фиксирует итоговую сумму как есть
	discountPct := uc.resolveDiscount(ctx, req)

	var result *domain.UnitBooking

	// 3. Проверка вместимости и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		facility, err := uc.facilityRepo.GetByID(txCtx, req.FacilityID)
		if err != nil {
			if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
				uc.logger.Warn("CreateUnitBooking: facility id=%d not found", req.FacilityID)
				return ErrFacilityNotFound
			}
			uc.logger.Error("CreateUnitBooking: failed to get facility id=%d: %v", req.FacilityID, err)
			return fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
		}

		if !facility.AcceptsNewBookings() {
			uc.logger.Warn("CreateUnitBooking: facility id=%d is inactive", req.FacilityID)
			return ErrFacilityInactive
		}

		if req.BookedUnits > facility.CapacityUnits {
			return fmt.Errorf("%w: requested %d units, facility capacity is %d",
				ErrInsufficientCapacity, req.BookedUnits, facility.CapacityUnits)
		}

		check, err := uc.availability.CheckUnitCapacity(txCtx, facility, req.StartTime, req.EndTime, req.BookedUnits, nil)
		if err != nil {
			uc.logger.Error("CreateUnitBooking: capacity check failed: %v", err)
			return fmt.Errorf("%w: capacity check failed: %v", ErrInternal, err)
		}
		if !check.Available {
			uc.logger.Warn("CreateUnitBooking: facility id=%d has %d/%d units free, requested %d",
				req.FacilityID, check.AvailableUnits, check.CapacityUnits, req.BookedUnits)
			return fmt.Errorf("%w: requested %d units, %d available",
				ErrInsufficientCapacity, req.BookedUnits, check.AvailableUnits)
		}

		// Стоимость фиксируется на момент создания
		var total float64
		if req.PriceOverride != nil {
			total = money.Round2(*req.PriceOverride)
		} else {
			total = domain.ApplyDiscount(
				domain.UnitBookingAmount(facility.HourlyRate, req.StartTime, req.EndTime, req.BookedUnits),
				discountPct,
			)
		}

		advance := domain.ClampPayment(money.Round2(req.AdvanceAmount), total)
		paymentStatus := domain.DerivePaymentStatus(advance, total, false)

		status := domain.StatusPending
		if paymentStatus == domain.PaymentPaid {
			status = domain.StatusConfirmed
		}

		booking := &domain.UnitBooking{
			FacilityID:    req.FacilityID,
			UserID:        req.UserID,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			BookedUnits:   req.BookedUnits,
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
			uc.logger.Error("CreateUnitBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateUnitBooking: successfully created booking id=%d, total=%.2f", result.ID, result.TotalAmount)

	uc.publishCreated(ctx, result)

	return toResponse(result), nil
}

// resolveDiscount возвращает процент скидки пользователя.
// Недоступность MembershipService не блокирует создание: скидка просто
// не применяется
func (uc *UseCase) resolveDiscount(ctx context.Context, req *Request) float64 {
	if req.PriceOverride != nil {
		return 0
	}

	discount, err := uc.membership.GetDiscountWithGracefulDegradation(ctx, req.UserID)
	if err != nil {
		if !errors.Is(err, membershipClient.ErrMemberNotFound) {
			uc.logger.Warn("CreateUnitBooking: membership discount unavailable for user=%d: %v", req.UserID, err)
		}
		return 0
	}

	return discount.DiscountPercentage
}

func (uc *UseCase) publishCreated(ctx context.Context, b *domain.UnitBooking) {
	err := uc.publisher.Publish(ctx, queue.RoutingKey(domain.KindUnit, queue.ActionCreated), queue.BookingCreatedEvent{
		Kind:        domain.KindUnit,
		BookingID:   b.ID,
		UserID:      b.UserID,
		FacilityIDs: []int64{b.FacilityID},
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		TotalAmount: b.TotalAmount,
		Status:      b.Status,
	})
	if err != nil {
		uc.logger.Warn("CreateUnitBooking: failed to publish created event for booking id=%d: %v", b.ID, err)
	}
}

func toResponse(b *domain.UnitBooking) *Response {
	return &Response{
		ID:            b.ID,
		FacilityID:    b.FacilityID,
		UserID:        b.UserID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		BookedUnits:   b.BookedUnits,
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
