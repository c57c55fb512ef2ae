package scheduleconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	"github.com/m04kA/Clinic-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/Clinic-SchedulingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов (см. dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// pgUniqueViolation код ошибки PostgreSQL при нарушении уникальности
const pgUniqueViolation = "23505"

var configColumns = []string{
	"id",
	"resource_kind",
	"resource_id",
	"day_start",
	"day_end",
	"slot_duration_minutes",
	"min_booking_notice_minutes",
	"advance_booking_days",
	"created_at",
	"updated_at",
}

// Repository репозиторий конфигурации расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую конфигурацию расписания
func (r *Repository) Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_config").
		Columns(
			"resource_kind",
			"resource_id",
			"day_start",
			"day_end",
			"slot_duration_minutes",
			"min_booking_notice_minutes",
			"advance_booking_days",
		).
		Values(
			config.ResourceKind,
			config.ResourceID,
			config.DayStart,
			config.DayEnd,
			config.SlotDurationMinutes,
			config.MinBookingNoticeMinutes,
			config.AdvanceBookingDays,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateConfig
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// GetByResource получает конфигурацию для конкретного сочетания вида и ресурса.
// resourceID == nil означает конфигурацию на весь вид.
func (r *Repository) GetByResource(ctx context.Context, kind domain.ResourceKind, resourceID *int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("schedule_config").
		Where(squirrel.Eq{"resource_kind": kind})

	if resourceID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": *resourceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResource - build select query: %v", ErrBuildQuery, err)
	}

	config, err := r.scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResource - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов:
// 1. Конфигурация конкретного ресурса (kind, resourceID)
// 2. Конфигурация на весь вид (kind, NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound;
// встроенные значения по умолчанию подставляет вызывающая сторона.
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, kind domain.ResourceKind, resourceID *int64) (*domain.ScheduleConfig, error) {
	if resourceID != nil {
		config, err := r.GetByResource(ctx, kind, resourceID)
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - resource level: %v", ErrExecQuery, err)
		}
	}

	config, err := r.GetByResource(ctx, kind, nil)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - kind level: %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// GetAllByKind получает все конфигурации вида ресурсов (общую и per-resource)
func (r *Repository) GetAllByKind(ctx context.Context, kind domain.ResourceKind) ([]*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("schedule_config").
		Where(squirrel.Eq{"resource_kind": kind}).
		OrderBy("resource_id ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByKind - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByKind - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.ScheduleConfig, 0)

	for rows.Next() {
		config, err := r.scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByKind - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByKind - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Upsert создает или обновляет конфигурацию для сочетания (kind, resourceID)
func (r *Repository) Upsert(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	existing, err := r.GetByResource(ctx, config.ResourceKind, config.ResourceID)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return r.Create(ctx, config)
		}
		return nil, err
	}

	return r.update(ctx, existing.ID, config)
}

func (r *Repository) update(ctx context.Context, id int64, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_config").
		Set("day_start", config.DayStart).
		Set("day_end", config.DayEnd).
		Set("slot_duration_minutes", config.SlotDurationMinutes).
		Set("min_booking_notice_minutes", config.MinBookingNoticeMinutes).
		Set("advance_booking_days", config.AdvanceBookingDays).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: update - execute update: %v", ErrExecQuery, err)
	}

	config.ID = id
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// Delete удаляет конфигурацию расписания
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_config").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanConfig(row rowScanner) (*domain.ScheduleConfig, error) {
	var config domain.ScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.ResourceKind,
		&config.ResourceID,
		&config.DayStart,
		&config.DayEnd,
		&config.SlotDurationMinutes,
		&config.MinBookingNoticeMinutes,
		&config.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
