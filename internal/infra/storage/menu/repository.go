package menu

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

var menuColumns = []string{"id", "name", "name_en", "duration", "price", "description", "display_order"}

// Repository репозиторий меню
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория меню
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll возвращает меню в порядке отображения
func (r *Repository) GetAll(ctx context.Context) ([]*domain.MenuItem, error) {
	query, args, err := psqlbuilder.Select(menuColumns...).
		From("menus").
		OrderBy("display_order ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}
	return r.query(ctx, "GetAll", query, args)
}

// GetByIDs возвращает позиции меню по списку ID. Отсутствующие ID просто не попадают в результат.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.MenuItem, error) {
	if len(ids) == 0 {
		return []*domain.MenuItem{}, nil
	}

	query, args, err := psqlbuilder.Select(menuColumns...).
		From("menus").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}
	return r.query(ctx, "GetByIDs", query, args)
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.MenuItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	items := make([]*domain.MenuItem, 0)
	for rows.Next() {
		var m domain.MenuItem
		var nameEn, description sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &nameEn, &m.DurationMinutes, &m.Price, &description, &m.DisplayOrder); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrExecQuery, op, err)
		}
		if nameEn.Valid {
			m.NameEn = &nameEn.String
		}
		if description.Valid {
			m.Description = &description.String
		}
		items = append(items, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrExecQuery, op, err)
	}

	return items, nil
}
