package penalty

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
	"github.com/m04kA/Coworkly-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Coworkly-BookingService/pkg/psqlbuilder"
)

var penaltyColumns = []string{
	"id",
	"user_id",
	"type",
	"reason",
	"limit_minutes",
	"amount_cents",
	"expires_at",
	"created_at",
	"revoked_at",
	"created_by_admin_id",
}

// Repository репозиторий для работы со штрафами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория штрафов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый штраф
func (r *Repository) Create(ctx context.Context, penalty *domain.Penalty) (*domain.Penalty, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("penalty").
		Columns(
			"user_id",
			"type",
			"reason",
			"limit_minutes",
			"amount_cents",
			"expires_at",
			"created_by_admin_id",
		).
		Values(
			penalty.UserID,
			penalty.Type,
			penalty.Reason,
			penalty.LimitMinutes,
			penalty.AmountCents,
			penalty.ExpiresAt,
			penalty.CreatedByAdminID,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&penalty.ID,
		&createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	penalty.CreatedAt = createdAt.Time

	return penalty, nil
}

// GetByID получает штраф по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Penalty, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(penaltyColumns...).
		From("penalty").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := r.scanPenalty(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPenaltyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan penalty: %v", ErrScanRow, err)
	}

	return p, nil
}

// GetActiveByUserID получает активные на момент now штрафы пользователя,
// отсортированные по времени создания (DESC - сначала новые).
// Активность не хранится: фильтр повторяет вычисление IsActive.
func (r *Repository) GetActiveByUserID(ctx context.Context, userID int64, now time.Time) ([]*domain.Penalty, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(penaltyColumns...).
		From("penalty").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"revoked_at": nil}).
		Where(squirrel.Or{
			squirrel.Eq{"expires_at": nil},
			squirrel.Gt{"expires_at": now},
		}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanPenalties(rows)
}

// GetByFilter получает штрафы по фильтру (для админского списка),
// отсортированные по времени создания (DESC)
func (r *Repository) GetByFilter(ctx context.Context, filter domain.PenaltyFilter, now time.Time) ([]*domain.Penalty, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(penaltyColumns...).
		From("penalty").
		OrderBy("created_at DESC")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}

	if filter.ActiveOnly {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"revoked_at": nil}).
			Where(squirrel.Or{
				squirrel.Eq{"expires_at": nil},
				squirrel.Gt{"expires_at": now},
			})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanPenalties(rows)
}

// Revoke проставляет revoked_at, если он ещё не проставлен.
// Повторный отзыв считается no-op: существующая метка не перезаписывается,
// запись уже моделирует финальное состояние.
func (r *Repository) Revoke(ctx context.Context, id int64, revokedAt time.Time) (*domain.Penalty, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("penalty").
		Set("revoked_at", revokedAt).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"revoked_at": nil}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Revoke - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Revoke - execute update: %v", ErrExecQuery, err)
	}

	// Перечитываем запись: отличаем отсутствующий штраф от уже отозванного
	return r.GetByID(ctx, id)
}

func (r *Repository) scanPenalty(row interface{ Scan(dest ...interface{}) error }) (*domain.Penalty, error) {
	var p domain.Penalty
	var reason sql.NullString
	var limitMinutes sql.NullInt64
	var amountCents sql.NullInt64
	var expiresAt, createdAt, revokedAt sql.NullTime
	var createdByAdminID sql.NullInt64

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Type,
		&reason,
		&limitMinutes,
		&amountCents,
		&expiresAt,
		&createdAt,
		&revokedAt,
		&createdByAdminID,
	)
	if err != nil {
		return nil, err
	}

	if reason.Valid {
		p.Reason = &reason.String
	}
	if limitMinutes.Valid {
		v := int(limitMinutes.Int64)
		p.LimitMinutes = &v
	}
	if amountCents.Valid {
		p.AmountCents = &amountCents.Int64
	}
	if expiresAt.Valid {
		p.ExpiresAt = &expiresAt.Time
	}
	p.CreatedAt = createdAt.Time
	if revokedAt.Valid {
		p.RevokedAt = &revokedAt.Time
	}
	if createdByAdminID.Valid {
		p.CreatedByAdminID = &createdByAdminID.Int64
	}

	return &p, nil
}

func (r *Repository) scanPenalties(rows *sql.Rows) ([]*domain.Penalty, error) {
	penalties := make([]*domain.Penalty, 0)

	for rows.Next() {
		p, err := r.scanPenalty(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanPenalties - scan row: %v", ErrScanRow, err)
		}
		penalties = append(penalties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPenalties - rows error: %v", ErrScanRow, err)
	}

	return penalties, nil
}
