package visit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
	"github.com/m04kA/Coworkly-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Coworkly-BookingService/pkg/psqlbuilder"
)

// Код ошибки unique_violation в PostgreSQL
const pgUniqueViolation = "23505"

var visitColumns = []string{
	"id",
	"booking_id",
	"user_id",
	"space_id",
	"check_in",
	"planned_end",
	"check_out",
	"status",
}

// Repository репозиторий для работы с визитами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория визитов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый визит со статусом ACTIVE.
// Инвариант "не больше одного ACTIVE визита на бронь" обеспечивается частичным
// уникальным индексом на уровне БД: конкурентная вторая вставка получает
// ErrActiveVisitExists, а не дублирует запись.
func (r *Repository) Create(ctx context.Context, visit *domain.Visit) (*domain.Visit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("visit").
		Columns(
			"booking_id",
			"user_id",
			"space_id",
			"check_in",
			"planned_end",
			"status",
		).
		Values(
			visit.BookingID,
			visit.UserID,
			visit.SpaceID,
			visit.CheckIn,
			visit.PlannedEnd,
			visit.Status,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&visit.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrActiveVisitExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return visit, nil
}

// GetByID получает визит по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Visit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(visitColumns...).
		From("visit").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	visit, err := r.scanVisitRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrVisitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan visit: %v", ErrScanRow, err)
	}

	return visit, nil
}

// GetActiveByBookingID получает ACTIVE визит по ID брони, если он есть
func (r *Repository) GetActiveByBookingID(ctx context.Context, bookingID int64) (*domain.Visit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(visitColumns...).
		From("visit").
		Where(squirrel.Eq{"booking_id": bookingID}).
		Where(squirrel.Eq{"status": domain.VisitActive}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	visit, err := r.scanVisitRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrVisitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByBookingID - scan visit: %v", ErrScanRow, err)
	}

	return visit, nil
}

// ListActive получает все ACTIVE визиты, отсортированные по плановому
// окончанию (ASC): первыми идут те, кто должен освободить место раньше
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Visit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(visitColumns...).
		From("visit").
		Where(squirrel.Eq{"status": domain.VisitActive}).
		OrderBy("planned_end ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanVisits(rows)
}

// ListExpiring получает ACTIVE визиты с плановым окончанием в [from, to],
// отсортированные по плановому окончанию (ASC)
func (r *Repository) ListExpiring(ctx context.Context, from, to time.Time) ([]*domain.Visit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(visitColumns...).
		From("visit").
		Where(squirrel.Eq{"status": domain.VisitActive}).
		Where(squirrel.GtOrEq{"planned_end": from}).
		Where(squirrel.LtOrEq{"planned_end": to}).
		OrderBy("planned_end ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiring - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiring - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanVisits(rows)
}

// Complete завершает визит: ставит check_out и переводит в COMPLETED.
// Переход выполняется только из ACTIVE (compare-and-set по статусу).
func (r *Repository) Complete(ctx context.Context, id int64, checkOut time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("visit").
		Set("check_out", checkOut).
		Set("status", domain.VisitCompleted).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.VisitActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Complete")
}

// UpdatePlannedEnd продлевает плановое окончание ACTIVE визита
func (r *Repository) UpdatePlannedEnd(ctx context.Context, id int64, plannedEnd time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("visit").
		Set("planned_end", plannedEnd).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.VisitActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePlannedEnd - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdatePlannedEnd")
}

// MarkOverdue переводит в OVERDUE все ACTIVE визиты с planned_end < now
// и возвращает обновлённые записи. Повторный вызов без новых просроченных
// визитов ничего не меняет.
func (r *Repository) MarkOverdue(ctx context.Context, now time.Time) ([]*domain.Visit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("visit").
		Set("status", domain.VisitOverdue).
		Where(squirrel.Eq{"status": domain.VisitActive}).
		Where(squirrel.Lt{"planned_end": now}).
		Suffix("RETURNING id, booking_id, user_id, space_id, check_in, planned_end, check_out, status").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: MarkOverdue - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: MarkOverdue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanVisits(rows)
}

func (r *Repository) execExpectingRow(ctx context.Context, executor dbmetrics.DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrVisitNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanVisit(row rowScanner) (*domain.Visit, error) {
	var v domain.Visit
	var checkOut sql.NullTime

	err := row.Scan(
		&v.ID,
		&v.BookingID,
		&v.UserID,
		&v.SpaceID,
		&v.CheckIn,
		&v.PlannedEnd,
		&checkOut,
		&v.Status,
	)
	if err != nil {
		return nil, err
	}

	if checkOut.Valid {
		v.CheckOut = &checkOut.Time
	}

	return &v, nil
}

func (r *Repository) scanVisitRow(row *sql.Row) (*domain.Visit, error) {
	return r.scanVisit(row)
}

func (r *Repository) scanVisits(rows *sql.Rows) ([]*domain.Visit, error) {
	visits := make([]*domain.Visit, 0)

	for rows.Next() {
		v, err := r.scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanVisits - scan row: %v", ErrScanRow, err)
		}
		visits = append(visits, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanVisits - rows error: %v", ErrScanRow, err)
	}

	return visits, nil
}
