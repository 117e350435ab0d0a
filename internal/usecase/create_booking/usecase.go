package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
	userClient "github.com/m04kA/Coworkly-BookingService/internal/integrations/userservice"
	"github.com/m04kA/Coworkly-BookingService/internal/service/penalties"
)

// UseCase use case создания бронирования (допуск).
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции:
// из двух конкурентных заявок на пересекающийся интервал побеждает ровно одна.
type UseCase struct {
	bookingRepo      BookingRepository
	penaltyValidator PenaltyValidator
	userClient       UserServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	penaltyValidator PenaltyValidator,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		penaltyValidator: penaltyValidator,
		userClient:       userClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, space=%d, interval=[%s, %s)",
		req.UserID, req.SpaceID, req.StartsAt.Format(time.RFC3339), req.EndsAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что пользователь существует и активен
	user, err := uc.userClient.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	if user.IsBlocked() {
		uc.logger.Warn("CreateBooking: user id=%d is blocked", req.UserID)
		return nil, ErrUserBlocked
	}

	// 3. Проверяем активные штрафы пользователя
	if err := uc.penaltyValidator.ValidateBooking(ctx, req.UserID, req.EndsAt.Sub(req.StartsAt)); err != nil {
		switch {
		case errors.Is(err, penalties.ErrUserTimedOut):
			uc.logger.Warn("CreateBooking: user id=%d rejected by timeout penalty", req.UserID)
			return nil, fmt.Errorf("%w: %v", ErrUserTimedOut, err)
		case errors.Is(err, penalties.ErrDurationExceeded):
			uc.logger.Warn("CreateBooking: user id=%d rejected by duration limit", req.UserID)
			return nil, fmt.Errorf("%w: %v", ErrDurationExceeded, err)
		default:
			uc.logger.Error("CreateBooking: penalty validation failed for user id=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: penalty validation: %v", ErrInternal, err)
		}
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 4. Проверка занятости и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Считаем активные пересекающиеся брони с блокировкой (FOR UPDATE)
		overlapping, err := uc.bookingRepo.CountActiveOverlapping(txCtx, req.SpaceID, req.StartsAt, req.EndsAt)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to count overlapping bookings: %v", ErrInternal, err)
		}

		// Пространство эксклюзивное: одна активная бронь закрывает интервал
		if overlapping > 0 {
			uc.logger.Warn("CreateBooking: space=%d has %d overlapping bookings in interval",
				req.SpaceID, overlapping)
			return ErrSlotNotAvailable
		}

		// 4.2. Создаем бронирование в статусе PENDING.
		// Стоимость считает внешний биллинг, при допуске фиксируем 0.
		booking := &domain.Booking{
			UserID:     req.UserID,
			SpaceID:    req.SpaceID,
			StartsAt:   req.StartsAt,
			EndsAt:     req.EndsAt,
			Status:     domain.StatusPending,
			TotalCents: 0,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking id=%d created for user=%d, space=%d",
		result.ID, result.UserID, result.SpaceID)

	return &Response{
		ID:         result.ID,
		UserID:     result.UserID,
		SpaceID:    result.SpaceID,
		StartsAt:   result.StartsAt,
		EndsAt:     result.EndsAt,
		Status:     string(result.Status),
		TotalCents: result.TotalCents,
		CreatedAt:  result.CreatedAt,
	}, nil
}
