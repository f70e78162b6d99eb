package facility

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityService/pkg/psqlbuilder"
)

// Repository репозиторий каталога объектов.
// Движок бронирований только читает каталог; создание и деактивация
// объектов выполняются административным контуром вне движка.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория объектов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var facilityColumns = []string{
	"id",
	"name",
	"capacity_units",
	"hourly_rate",
	"active",
	"created_at",
	"updated_at",
}

// GetByID получает объект по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(facilityColumns...).
		From("facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	f, err := scanFacility(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan facility: %v", ErrScanRow, err)
	}

	return f, nil
}

// GetByIDs получает набор объектов по списку ID.
// Возвращает найденные объекты; отсутствующие ID определяет вызывающий.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(facilityColumns...).
		From("facilities").
		Where("id = ANY(?)", pq.Array(ids)).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanFacilities(rows)
}

// ListActive получает все активные объекты каталога
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(facilityColumns...).
		From("facilities").
		Where(squirrel.Eq{"active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanFacilities(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFacility(row rowScanner) (*domain.Facility, error) {
	var f domain.Facility
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.CapacityUnits,
		&f.HourlyRate,
		&f.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return &f, nil
}

func scanFacilities(rows *sql.Rows) ([]*domain.Facility, error) {
	facilities := make([]*domain.Facility, 0)

	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanFacilities - scan row: %v", ErrScanRow, err)
		}
		facilities = append(facilities, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanFacilities - rows error: %v", ErrScanRow, err)
	}

	return facilities, nil
}
