package adminblock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository репозиторий административных блокировок
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate возвращает блокировки дня по времени начала
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.AdminBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "start_time", "end_time", "type", "label", "created_at").
		From("admin_blocks").
		Where(squirrel.Eq{"date": date}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.AdminBlock, 0)
	for rows.Next() {
		var b domain.AdminBlock
		if err := rows.Scan(&b.ID, &b.Date, &b.StartTime, &b.EndTime, &b.Kind, &b.Label, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetByDate - scan row: %w", ErrExecQuery, err)
		}
		blocks = append(blocks, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - rows error: %w", ErrExecQuery, err)
	}

	return blocks, nil
}

// Create создает блокировку
func (r *Repository) Create(ctx context.Context, b *domain.AdminBlock) (*domain.AdminBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("admin_blocks").
		Columns("date", "start_time", "end_time", "type", "label").
		Values(b.Date, b.StartTime, b.EndTime, b.Kind, b.Label).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	return b, nil
}

// Delete удаляет блокировку и возвращает её дату
func (r *Repository) Delete(ctx context.Context, id int64) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("admin_blocks").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING date").
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	var date time.Time
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrBlockNotFound
		}
		return time.Time{}, fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}
	return date, nil
}
