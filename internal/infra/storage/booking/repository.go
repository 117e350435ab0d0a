package booking

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

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её. При создании
// через admission это обязательно: проверка пересечений и вставка должны
// выполняться как одна сериализуемая операция.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking").
		Columns(
			"user_id",
			"space_id",
			"starts_at",
			"ends_at",
			"status",
			"total_cents",
		).
		Values(
			booking.UserID,
			booking.SpaceID,
			booking.StartsAt,
			booking.EndsAt,
			booking.Status,
			booking.TotalCents,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"space_id",
		"starts_at",
		"ends_at",
		"status",
		"total_cents",
		"created_at",
	).
		From("booking").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.SpaceID,
		&booking.StartsAt,
		&booking.EndsAt,
		&booking.Status,
		&booking.TotalCents,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time

	return &booking, nil
}

// GetByUserIDWithSpace получает бронирования пользователя с проекцией
// пространства и локации, отсортированные по времени начала (ASC)
func (r *Repository) GetByUserIDWithSpace(ctx context.Context, userID int64) ([]*domain.BookingWithSpace, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"b.id",
		"b.user_id",
		"b.space_id",
		"b.starts_at",
		"b.ends_at",
		"b.status",
		"b.total_cents",
		"b.created_at",
		"s.name",
		"s.type",
		"l.id",
		"l.name",
	).
		From("booking b").
		Join("space s ON b.space_id = s.id").
		Join("location l ON s.location_id = l.id").
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("b.starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserIDWithSpace - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserIDWithSpace - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.BookingWithSpace, 0)
	for rows.Next() {
		var b domain.BookingWithSpace
		var createdAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.SpaceID,
			&b.StartsAt,
			&b.EndsAt,
			&b.Status,
			&b.TotalCents,
			&createdAt,
			&b.SpaceName,
			&b.SpaceType,
			&b.LocationID,
			&b.LocationName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByUserIDWithSpace - scan row: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUserIDWithSpace - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// CountActiveOverlapping подсчитывает бронирования пространства, занимающие
// слот и пересекающиеся с интервалом [from, to). Касание границ пересечением
// не считается.
//
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы конкурентный
// admission на то же пространство дождался завершения текущего. Вместе с
// сериализуемой изоляцией это гарантирует, что из двух конкурентных созданий
// пересекающихся бронирований выигрывает ровно одно.
func (r *Repository) CountActiveOverlapping(ctx context.Context, spaceID int64, from, to time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blockingStatuses := make([]string, len(domain.SlotBlockingStatuses))
	for i, s := range domain.SlotBlockingStatuses {
		blockingStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("id").
		From("booking").
		Where(squirrel.Eq{"space_id": spaceID}).
		Where(squirrel.Eq{"status": blockingStatuses}).
		Where(squirrel.Lt{"starts_at": to}).
		Where(squirrel.Gt{"ends_at": from})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("%w: CountActiveOverlapping - scan row: %v", ErrScanRow, err)
		}
		count++
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: CountActiveOverlapping - rows error: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatusFrom переводит бронирование из статуса from в статус to
// (compare-and-set). Возвращает ErrBookingNotFound, если бронирования нет,
// и ErrStatusConflict, если текущий статус уже не from.
func (r *Repository) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking").
		Set("status", to).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Различаем "нет бронирования" и "статус уже другой"
		if _, err := r.GetByID(ctx, id); err != nil {
			return ErrBookingNotFound
		}
		return ErrStatusConflict
	}

	return nil
}
