package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	"github.com/m04kA/Clinic-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/Clinic-SchedulingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов (см. dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий платёжных записей бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или обновляет платёжную запись бронирования.
// Идемпотентен по booking_id: повтор шага оплаты после сбоя
// не создаёт дубликатов (ON CONFLICT ... DO UPDATE).
func (r *Repository) Upsert(ctx context.Context, record *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"booking_id",
			"external_ref",
			"amount",
			"currency",
			"status",
		).
		Values(
			record.BookingID,
			record.ExternalRef,
			record.Amount,
			record.Currency,
			record.Status,
		).
		Suffix(`ON CONFLICT (booking_id) DO UPDATE
			SET amount = EXCLUDED.amount,
			    currency = EXCLUDED.currency,
			    status = EXCLUDED.status,
			    updated_at = NOW()
			RETURNING id, external_ref, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&record.ExternalRef,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return record, nil
}

// GetByBookingID получает платёжную запись бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.PaymentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"external_ref",
		"amount",
		"currency",
		"status",
		"created_at",
		"updated_at",
	).
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var record domain.PaymentRecord
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&record.BookingID,
		&record.ExternalRef,
		&record.Amount,
		&record.Currency,
		&record.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan payment: %v", ErrScanRow, err)
	}

	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return &record, nil
}

// UpdateStatus обновляет статус платёжной записи
func (r *Repository) UpdateStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}
