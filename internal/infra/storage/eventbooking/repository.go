package eventbooking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityService/pkg/psqlbuilder"
)

// Repository репозиторий событийных бронирований.
// Связь с объектами хранится в таблице event_booking_facilities;
// в выборки список объектов подтягивается ARRAY-подзапросом.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событийных бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// facilityIDsColumn подзапрос, собирающий ID объектов события в массив
const facilityIDsColumn = "ARRAY(SELECT facility_id FROM event_booking_facilities ef " +
	"WHERE ef.event_booking_id = event_bookings.id ORDER BY facility_id) AS facility_ids"

var bookingColumns = []string{
	"id",
	"user_id",
	"event_name",
	"customer_name",
	"customer_phone",
	facilityIDsColumn,
	"start_time",
	"end_time",
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

func terminalStatusStrings() []string {
	statuses := make([]string, len(domain.TerminalStatuses))
	for i, s := range domain.TerminalStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

func activeStatusStrings() []string {
	statuses := make([]string, len(domain.EventActiveStatuses))
	for i, s := range domain.EventActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// Create создает событийное бронирование вместе со связями с объектами.
// Вызывается только внутри транзакции usecase'а создания: вставка строки
// и связей должна фиксироваться атомарно с проверкой эксклюзивности.
func (r *Repository) Create(ctx context.Context, booking *domain.EventBooking) (*domain.EventBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("event_bookings").
		Columns(
			"user_id",
			"event_name",
			"customer_name",
			"customer_phone",
			"start_time",
			"end_time",
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
			booking.UserID,
			booking.EventName,
			booking.CustomerName,
			booking.CustomerPhone,
			booking.StartTime,
			booking.EndTime,
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

	if err := r.insertFacilities(ctx, executor, booking.ID, booking.FacilityIDs); err != nil {
		return nil, err
	}

	return booking, nil
}

// GetByID получает событийное бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.EventBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("event_bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF event_bookings")
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

// ListWithFilter получает событийные бронирования с фильтрацией
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.EventBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("event_bookings")

	if filter.FacilityID != nil {
		selectBuilder = selectBuilder.Where(
			"id IN (SELECT event_booking_id FROM event_booking_facilities WHERE facility_id = ?)",
			*filter.FacilityID,
		)
	}
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

// ListActiveOverlapping получает активные события, пересекающиеся
// с интервалом [start, end) и занимающие хотя бы один из объектов.
// excludeID исключает собственное событие при переносе.
func (r *Repository) ListActiveOverlapping(ctx context.Context, facilityIDs []int64, start, end time.Time, excludeID *int64) ([]*domain.EventBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("event_bookings").
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		Where(
			"id IN (SELECT event_booking_id FROM event_booking_facilities WHERE facility_id = ANY(?))",
			pq.Array(facilityIDs),
		)

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF event_bookings")
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

// UpdateStatus обновляет статус и/или платёжный статус события.
// Терминальные строки не изменяются (guard в WHERE).
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status *domain.BookingStatus, paymentStatus *domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("event_bookings").
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

// UpdatePayment записывает оплату; status передаётся при автопереходе
// pending -> confirmed после первого платежа
func (r *Repository) UpdatePayment(ctx context.Context, id int64, paidAmount, balanceAmount float64, paymentStatus domain.PaymentStatus, status *domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("event_bookings").
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

// Cancel отменяет событие с рассчитанными удержанием и возвратом
func (r *Repository) Cancel(ctx context.Context, id int64, charge, refund float64, paymentStatus domain.PaymentStatus, reason *string, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("event_bookings").
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

// Reschedule переносит событие на новый интервал
func (r *Repository) Reschedule(ctx context.Context, id int64, start, end, remindAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("event_bookings").
		Set("start_time", start).
		Set("end_time", end).
		Set("remind_at", remindAt).
		Set("reschedule_count", squirrel.Expr("reschedule_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": terminalStatusStrings()})

	return r.execExpectingRow(ctx, executor, updateBuilder, "Reschedule")
}

// ReplaceFacilities заменяет набор объектов события.
// Вызывается только внутри транзакции переноса: смена набора и обновление
// интервала фиксируются атомарно.
func (r *Repository) ReplaceFacilities(ctx context.Context, id int64, facilityIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("event_booking_facilities").
		Where(squirrel.Eq{"event_booking_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceFacilities - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceFacilities - execute delete: %v", ErrExecQuery, err)
	}

	return r.insertFacilities(ctx, executor, id, facilityIDs)
}

// CompleteExpired переводит активные события с прошедшим end_time
// в статус completed. Идемпотентно и безопасно при конкурентных запусках.
func (r *Repository) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("event_bookings").
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

func (r *Repository) insertFacilities(ctx context.Context, executor DBExecutor, bookingID int64, facilityIDs []int64) error {
	insertBuilder := psqlbuilder.Insert("event_booking_facilities").
		Columns("event_booking_id", "facility_id")

	for _, facilityID := range facilityIDs {
		insertBuilder = insertBuilder.Values(bookingID, facilityID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertFacilities - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertFacilities - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

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

func scanBooking(row rowScanner) (*domain.EventBooking, error) {
	var b domain.EventBooking
	var createdAt, updatedAt sql.NullTime
	var facilityIDs pq.Int64Array

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.EventName,
		&b.CustomerName,
		&b.CustomerPhone,
		&facilityIDs,
		&b.StartTime,
		&b.EndTime,
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

	b.FacilityIDs = facilityIDs
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.EventBooking, error) {
	bookings := make([]*domain.EventBooking, 0)

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
