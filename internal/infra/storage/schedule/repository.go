package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/dbmetrics"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий расписания: недельные часы работы и особые даты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBusinessHours получает часы работы для дня недели
func (r *Repository) GetBusinessHours(ctx context.Context, day time.Weekday) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"is_open",
		"open_time",
		"close_time",
		"break_start",
		"break_end",
		"updated_at",
	).
		From("business_hours").
		Where(squirrel.Eq{"day_of_week": int(day)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessHours - build select query: %v", ErrBuildQuery, err)
	}

	hours, err := scanBusinessHours(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBusinessHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessHours - scan row: %v", ErrScanRow, err)
	}

	return hours, nil
}

// ListBusinessHours получает расписание всех семи дней недели
func (r *Repository) ListBusinessHours(ctx context.Context) ([]*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"is_open",
		"open_time",
		"close_time",
		"break_start",
		"break_end",
		"updated_at",
	).
		From("business_hours").
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBusinessHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusinessHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BusinessHours, 0, 7)
	for rows.Next() {
		hours, err := scanBusinessHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBusinessHours - scan row: %v", ErrScanRow, err)
		}
		result = append(result, hours)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBusinessHours - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// UpsertBusinessHours создает или обновляет часы работы дня недели
// Таблица держит ровно одну строку на день недели
func (r *Repository) UpsertBusinessHours(ctx context.Context, hours *domain.BusinessHours) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("business_hours").
		Columns(
			"day_of_week",
			"is_open",
			"open_time",
			"close_time",
			"break_start",
			"break_end",
		).
		Values(
			int(hours.DayOfWeek),
			hours.IsOpen,
			hours.OpenTime,
			hours.CloseTime,
			hours.BreakStart,
			hours.BreakEnd,
		).
		Suffix(`ON CONFLICT (day_of_week) DO UPDATE SET
			is_open = EXCLUDED.is_open,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertBusinessHours - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: UpsertBusinessHours - execute upsert: %v", ErrExecQuery, err)
	}

	return hours, nil
}

// GetSpecialDate получает особую дату, если она задана
func (r *Repository) GetSpecialDate(ctx context.Context, date time.Time) (*domain.SpecialDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"date",
		"is_open",
		"open_time",
		"close_time",
		"reason",
		"updated_at",
	).
		From("special_dates").
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialDate - build select query: %v", ErrBuildQuery, err)
	}

	special, err := scanSpecialDate(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSpecialDateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialDate - scan row: %v", ErrScanRow, err)
	}

	return special, nil
}

// ListSpecialDates получает особые даты за период (включительно)
func (r *Repository) ListSpecialDates(ctx context.Context, from, to time.Time) ([]*domain.SpecialDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"date",
		"is_open",
		"open_time",
		"close_time",
		"reason",
		"updated_at",
	).
		From("special_dates").
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListSpecialDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSpecialDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.SpecialDate, 0)
	for rows.Next() {
		special, err := scanSpecialDate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListSpecialDates - scan row: %v", ErrScanRow, err)
		}
		result = append(result, special)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSpecialDates - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// UpsertSpecialDate создает или обновляет особую дату
func (r *Repository) UpsertSpecialDate(ctx context.Context, special *domain.SpecialDate) (*domain.SpecialDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("special_dates").
		Columns(
			"date",
			"is_open",
			"open_time",
			"close_time",
			"reason",
		).
		Values(
			special.Date,
			special.IsOpen,
			special.OpenTime,
			special.CloseTime,
			special.Reason,
		).
		Suffix(`ON CONFLICT (date) DO UPDATE SET
			is_open = EXCLUDED.is_open,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			reason = EXCLUDED.reason,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSpecialDate - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: UpsertSpecialDate - execute upsert: %v", ErrExecQuery, err)
	}

	return special, nil
}

// DeleteSpecialDate удаляет особую дату; день возвращается к недельному расписанию
func (r *Repository) DeleteSpecialDate(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("special_dates").
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteSpecialDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteSpecialDate - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteSpecialDate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSpecialDateNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBusinessHours(row rowScanner) (*domain.BusinessHours, error) {
	var hours domain.BusinessHours
	var day int
	var updatedAt sql.NullTime

	err := row.Scan(
		&day,
		&hours.IsOpen,
		&hours.OpenTime,
		&hours.CloseTime,
		&hours.BreakStart,
		&hours.BreakEnd,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	hours.DayOfWeek = time.Weekday(day)
	hours.UpdatedAt = updatedAt.Time

	return &hours, nil
}

func scanSpecialDate(row rowScanner) (*domain.SpecialDate, error) {
	var special domain.SpecialDate
	var updatedAt sql.NullTime

	err := row.Scan(
		&special.Date,
		&special.IsOpen,
		&special.OpenTime,
		&special.CloseTime,
		&special.Reason,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	special.UpdatedAt = updatedAt.Time

	return &special, nil
}
