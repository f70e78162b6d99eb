package unitbooking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityService/pkg/psqlbuilder"
)

// Repository репозиторий юнитных бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория юнитных бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var bookingColumns = []string{
	"id",
	"facility_id",
	"user_id",
	"customer_name",
	"customer_phone",
	"start_time",
	"end_time",
	"booked_units",
	"status",
	"payment_status",
	"total_amount",
	"advance_amount",
	"paid_amount",
	"balance_amount",
	"cancellation_charge",
	"refund_amount",
	"cancellation_reason",
	"cancelled_at",
	"reschedule_count",
	"remind_at",
	"notes",
	"created_at",
	"updated_at",
}

// terminalStatusStrings статусы, строки в которых не изменяются
func terminalStatusStrings() []string {
	statuses := make([]string, len(domain.TerminalStatuses))
	for i, s := range domain.TerminalStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

func activeStatusStrings() []string {
	statuses := make([]string, len(domain.UnitActiveStatuses))
	for i, s := range domain.UnitActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// Create создает новое юнитное бронирование.
// Вызывается внутри SERIALIZABLE-транзакции usecase'а создания:
// проверка вместимости и запись фиксируются как одно целое.
func (r *Repository) Create(ctx context.Context, booking *domain.UnitBooking) (*domain.UnitBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("unit_bookings").
		Columns(
			"facility_id",
			"user_id",
			"customer_name",
			"customer_phone",
			"start_time",
			"end_time",
			"booked_units",
			"status",
			"payment_status",
			"total_amount",
			"advance_amount",
			"paid_amount",
			"balance_amount",
			"remind_at",
			"notes",
		).
		Values(
			booking.FacilityID,
			booking.UserID,
			booking.CustomerName,
			booking.CustomerPhone,
			booking.StartTime,
			booking.EndTime,
			booking.BookedUnits,
			booking.Status,
			booking.PaymentStatus,
			booking.TotalAmount,
			booking.AdvanceAmount,
			booking.PaidAmount,
			booking.BalanceAmount,
			booking.RemindAt,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы конкурентные
// платежи и отмены не читали устаревшее состояние.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.UnitBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("unit_bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListWithFilter получает бронирования с фильтрацией по объекту,
// периоду и статусу
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.UnitBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("unit_bookings")

	if filter.FacilityID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"facility_id": *filter.FacilityID})
	}
	// Период трактуется как пересечение с [From, To)
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings()})
	}

	query, args, err := selectBuilder.
		OrderBy("start_time ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListActiveOverlapping получает активные бронирования объекта,
// пересекающиеся с полуоткрытым интервалом [start, end).
// excludeID исключает собственное бронирование при переносе.
//
// Внутри транзакции выборка блокирует строки (FOR UPDATE): конкурентное
// создание на том же объекте сериализуется и не может переподписать
// вместимость.
func (r *Repository) ListActiveOverlapping(ctx context.Context, facilityID int64, start, end time.Time, excludeID *int64) ([]*domain.UnitBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("unit_bookings").
		Where(squirrel.Eq{"facility_id": facilityID}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.
		OrderBy("start_time ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус и/или платёжный статус бронирования.
// Терминальные строки (completed/cancelled) не изменяются никогда:
// guard прямо в WHERE закрывает гонку двух конкурентных обновлений.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status *domain.BookingStatus, paymentStatus *domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("unit_bookings").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": terminalStatusStrings()})

	if status != nil {
		updateBuilder = updateBuilder.Set("status", *status)
	}
	if paymentStatus != nil {
		updateBuilder = updateBuilder.Set("payment_status", *paymentStatus)
	}

	return r.execExpectingRow(ctx, executor, updateBuilder, "UpdateStatus")
}

// UpdatePayment записывает новую оплаченную сумму, остаток и платёжный
// статус; опционально — новый статус бронирования (подтверждение по оплате)
func (r *Repository) UpdatePayment(ctx context.Context, id int64, paidAmount, balanceAmount float64, paymentStatus domain.PaymentStatus, status *domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("unit_bookings").
		Set("paid_amount", paidAmount).
		Set("balance_amount", balanceAmount).
		Set("payment_status", paymentStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})

	if status != nil {
		updateBuilder = updateBuilder.Set("status", *status)
	}

	return r.execExpectingRow(ctx, executor, updateBuilder, "UpdatePayment")
}

// Cancel отменяет бронирование с рассчитанными удержанием и возвратом
func (r *Repository) Cancel(ctx context.Context, id int64, charge, refund float64, paymentStatus domain.PaymentStatus, reason *string, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("unit_bookings").
		Set("status", domain.StatusCancelled).
		Set("payment_status", paymentStatus).
		Set("cancellation_charge", charge).
		Set("refund_amount", refund).
		Set("balance_amount", 0).
		Set("cancellation_reason", reason).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": terminalStatusStrings()})

	return r.execExpectingRow(ctx, executor, updateBuilder, "Cancel")
}

// Reschedule переносит бронирование на новый интервал и пересчитывает
// напоминание. История переноса пишется отдельно (reschedulelog).
func (r *Repository) Reschedule(ctx context.Context, id int64, start, end, remindAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("unit_bookings").
		Set("start_time", start).
		Set("end_time", end).
		Set("remind_at", remindAt).
		Set("reschedule_count", squirrel.Expr("reschedule_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": terminalStatusStrings()})

	return r.execExpectingRow(ctx, executor, updateBuilder, "Reschedule")
}

// CompleteExpired переводит активные бронирования с прошедшим end_time
// в статус completed. Монотонный переход: повторный запуск и конкурентные
// запуски безопасны (last-write-wins на одном и том же значении).
func (r *Repository) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("unit_bookings").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.LtOrEq{"end_time": now}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteExpired - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteExpired - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// execExpectingRow выполняет UPDATE, ожидая ровно одну затронутую строку
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, builder squirrel.UpdateBuilder, op string) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if affected == 0 {
		return ErrBookingNotUpdatable
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.UnitBooking, error) {
	var b domain.UnitBooking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.FacilityID,
		&b.UserID,
		&b.CustomerName,
		&b.CustomerPhone,
		&b.StartTime,
		&b.EndTime,
		&b.BookedUnits,
		&b.Status,
		&b.PaymentStatus,
		&b.TotalAmount,
		&b.AdvanceAmount,
		&b.PaidAmount,
		&b.BalanceAmount,
		&b.CancellationCharge,
		&b.RefundAmount,
		&b.CancellationReason,
		&b.CancelledAt,
		&b.RescheduleCount,
		&b.RemindAt,
		&b.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.UnitBooking, error) {
	bookings := make([]*domain.UnitBooking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
