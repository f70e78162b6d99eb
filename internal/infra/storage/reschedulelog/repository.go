// Package reschedulelog хранит историю переносов бронирований.
//
// История append-only и вынесена в отдельную таблицу, а не в массив внутри
// строки бронирования: записи не редактируются и их число не ограничено.
package reschedulelog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий истории переносов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория истории переносов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись истории переноса.
// Вызывается внутри транзакции переноса: запись истории и обновление
// интервала фиксируются атомарно.
func (r *Repository) Append(ctx context.Context, entry *domain.RescheduleEntry) (*domain.RescheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reschedule_history").
		Columns(
			"booking_kind",
			"booking_id",
			"from_start",
			"from_end",
			"to_start",
			"to_end",
			"reason",
			"changed_by",
		).
		Values(
			entry.Kind,
			entry.BookingID,
			entry.FromStart,
			entry.FromEnd,
			entry.ToStart,
			entry.ToEnd,
			entry.Reason,
			entry.ChangedBy,
		).
		Suffix("RETURNING id, changed_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	var changedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &changedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	entry.ChangedAt = changedAt.Time

	return entry, nil
}

// ListByBooking получает историю переносов бронирования в порядке добавления
func (r *Repository) ListByBooking(ctx context.Context, kind domain.BookingKind, bookingID int64) ([]*domain.RescheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_kind",
		"booking_id",
		"from_start",
		"from_end",
		"to_start",
		"to_end",
		"reason",
		"changed_by",
		"changed_at",
	).
		From("reschedule_history").
		Where(squirrel.Eq{"booking_kind": kind}).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.RescheduleEntry, 0)
	for rows.Next() {
		var e domain.RescheduleEntry
		err := rows.Scan(
			&e.ID,
			&e.Kind,
			&e.BookingID,
			&e.FromStart,
			&e.FromEnd,
			&e.ToStart,
			&e.ToEnd,
			&e.Reason,
			&e.ChangedBy,
			&e.ChangedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
