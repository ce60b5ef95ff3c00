package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// singletonID настройки салона хранятся одной строкой
const singletonID = 1

// Repository репозиторий настроек расписания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает сохраненные настройки
func (r *Repository) Get(ctx context.Context) (*domain.ScheduleSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"open_time",
		"close_time",
		"slot_interval_minutes",
		"cleanup_buffer_minutes",
		"new_customer_buffer_minutes",
		"returning_customer_buffer_minutes",
		"advance_booking_days",
		"updated_at",
	).
		From("schedule_settings").
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.ScheduleSettings
	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.OpenTime,
		&s.CloseTime,
		&s.SlotIntervalMinutes,
		&s.CleanupBufferMinutes,
		&s.NewCustomerBufferMinutes,
		&s.ReturningCustomerBufferMinutes,
		&s.AdvanceBookingDays,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %w", ErrExecQuery, err)
	}

	s.UpdatedAt = updatedAt.Time
	return &s, nil
}

// Upsert сохраняет настройки, создавая строку при первом сохранении
func (r *Repository) Upsert(ctx context.Context, s *domain.ScheduleSettings) (*domain.ScheduleSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_settings").
		Columns(
			"id",
			"open_time",
			"close_time",
			"slot_interval_minutes",
			"cleanup_buffer_minutes",
			"new_customer_buffer_minutes",
			"returning_customer_buffer_minutes",
			"advance_booking_days",
		).
		Values(
			singletonID,
			s.OpenTime,
			s.CloseTime,
			s.SlotIntervalMinutes,
			s.CleanupBufferMinutes,
			s.NewCustomerBufferMinutes,
			s.ReturningCustomerBufferMinutes,
			s.AdvanceBookingDays,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			slot_interval_minutes = EXCLUDED.slot_interval_minutes,
			cleanup_buffer_minutes = EXCLUDED.cleanup_buffer_minutes,
			new_customer_buffer_minutes = EXCLUDED.new_customer_buffer_minutes,
			returning_customer_buffer_minutes = EXCLUDED.returning_customer_buffer_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			updated_at = NOW()
		RETURNING id, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}
	return s, nil
}
