package space

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

// Repository репозиторий для работы с пространствами.
// FindFree выступает оракулом доступности: его ответ трактуется ядром как истина
// и не перепроверяется на уровне приложения.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория пространств
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindFree ищет активные пространства локации с вместимостью не ниже
// minCapacity, не имеющие занимающих слот бронирований, пересекающихся
// с интервалом [from, to)
func (r *Repository) FindFree(ctx context.Context, locationID int64, from, to time.Time, minCapacity int) ([]*domain.FreeSpace, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blockingStatuses := make([]string, len(domain.SlotBlockingStatuses))
	for i, s := range domain.SlotBlockingStatuses {
		blockingStatuses[i] = string(s)
	}

	// Подзапрос собирается с ?-плейсхолдерами: внешний билдер сам
	// перенумерует их в $N при финальном ToSql
	conflictSubquery, subArgs, err := squirrel.Select("1").
		From("booking b").
		Where("b.space_id = s.id").
		Where(squirrel.Eq{"b.status": blockingStatuses}).
		Where(squirrel.Lt{"b.starts_at": to}).
		Where(squirrel.Gt{"b.ends_at": from}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindFree - build conflict subquery: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.name",
		"s.capacity",
	).
		From("space s").
		Where(squirrel.Eq{"s.location_id": locationID}).
		Where(squirrel.Eq{"s.is_active": true}).
		Where(squirrel.GtOrEq{"s.capacity": minCapacity}).
		Where(fmt.Sprintf("NOT EXISTS (%s)", conflictSubquery), subArgs...).
		OrderBy("s.capacity ASC, s.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindFree - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindFree - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	spaces := make([]*domain.FreeSpace, 0)
	for rows.Next() {
		var s domain.FreeSpace
		if err := rows.Scan(&s.SpaceID, &s.Name, &s.Capacity); err != nil {
			return nil, fmt.Errorf("%w: FindFree - scan row: %v", ErrScanRow, err)
		}
		spaces = append(spaces, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindFree - rows error: %v", ErrScanRow, err)
	}

	return spaces, nil
}

// ListActive получает все активные пространства с проекцией локации,
// отсортированные по имени (ASC)
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Space, error) {
	return r.listActive(ctx, nil)
}

// ListActiveByLocation получает активные пространства локации,
// отсортированные по имени (ASC)
func (r *Repository) ListActiveByLocation(ctx context.Context, locationID int64) ([]*domain.Space, error) {
	return r.listActive(ctx, &locationID)
}

// GetByID получает пространство по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.location_id",
		"l.name",
		"s.name",
		"s.capacity",
		"s.type",
		"s.tariff_plan_id",
		"s.is_active",
	).
		From("space s").
		Join("location l ON s.location_id = l.id").
		Where(squirrel.Eq{"s.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Space
	var tariffPlanID sql.NullInt64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.LocationID,
		&s.LocationName,
		&s.Name,
		&s.Capacity,
		&s.Type,
		&tariffPlanID,
		&s.Active,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSpaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan space: %v", ErrScanRow, err)
	}

	if tariffPlanID.Valid {
		s.TariffPlanID = &tariffPlanID.Int64
	}

	return &s, nil
}

func (r *Repository) listActive(ctx context.Context, locationID *int64) ([]*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"s.id",
		"s.location_id",
		"l.name",
		"s.name",
		"s.capacity",
		"s.type",
		"s.tariff_plan_id",
		"s.is_active",
	).
		From("space s").
		Join("location l ON s.location_id = l.id").
		Where(squirrel.Eq{"s.is_active": true}).
		OrderBy("s.name ASC")

	if locationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.location_id": *locationID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	spaces := make([]*domain.Space, 0)
	for rows.Next() {
		var s domain.Space
		var tariffPlanID sql.NullInt64

		err := rows.Scan(
			&s.ID,
			&s.LocationID,
			&s.LocationName,
			&s.Name,
			&s.Capacity,
			&s.Type,
			&tariffPlanID,
			&s.Active,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: listActive - scan row: %v", ErrScanRow, err)
		}

		if tariffPlanID.Valid {
			s.TariffPlanID = &tariffPlanID.Int64
		}

		spaces = append(spaces, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listActive - rows error: %v", ErrScanRow, err)
	}

	return spaces, nil
}
