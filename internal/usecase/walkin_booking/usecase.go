package walkin_booking

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
	userClient "github.com/m04kA/Coworkly-BookingService/internal/integrations/userservice"
	"github.com/m04kA/Coworkly-BookingService/internal/usecase/create_booking"
)

// Алфавит временного пароля без визуально неоднозначных символов (0/O, 1/l/I)
const tempPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

// UseCase use case walk-in бронирования с ресепшена.
// Находит пользователя по email или регистрирует нового с временным паролем,
// затем передает заявку в обычный допуск бронирования.
type UseCase struct {
	userClient     UserServiceClient
	bookingCreator BookingCreator
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(userClient UserServiceClient, bookingCreator BookingCreator, logger Logger) *UseCase {
	return &UseCase{
		userClient:     userClient,
		bookingCreator: bookingCreator,
		logger:         logger,
	}
}

// Execute выполняет use case walk-in бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	uc.logger.Info("WalkInBooking: email=%s, space=%d", email, req.SpaceID)

	// 1. Ищем пользователя, при отсутствии регистрируем нового
	var tempPassword *string
	existing := true

	user, err := uc.userClient.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Error("WalkInBooking: failed to find user by email: %v", err)
			return nil, fmt.Errorf("%w: failed to find user: %v", ErrInternal, err)
		}

		password, err := generateTempPassword(domain.TempPasswordLength)
		if err != nil {
			uc.logger.Error("WalkInBooking: failed to generate temp password: %v", err)
			return nil, fmt.Errorf("%w: failed to generate temp password: %v", ErrInternal, err)
		}

		user, err = uc.userClient.Register(ctx, &userClient.RegisterRequest{
			Email:    email,
			Password: password,
			FullName: req.FullName,
			Role:     "RESIDENT",
		})
		if err != nil {
			uc.logger.Error("WalkInBooking: failed to register user: %v", err)
			return nil, fmt.Errorf("%w: failed to register user: %v", ErrInternal, err)
		}

		tempPassword = &password
		existing = false
		uc.logger.Info("WalkInBooking: registered new user id=%d", user.ID)
	}

	// 2. Обычный допуск бронирования, ошибки пробрасываются как есть
	booking, err := uc.bookingCreator.Execute(ctx, &create_booking.Request{
		UserID:   user.ID,
		SpaceID:  req.SpaceID,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("WalkInBooking: booking id=%d created for user=%d (existing=%t)",
		booking.ID, user.ID, existing)

	return &Response{
		UserID:       user.ID,
		BookingID:    booking.ID,
		StartsAt:     booking.StartsAt,
		EndsAt:       booking.EndsAt,
		Status:       booking.Status,
		ExistingUser: existing,
		TempPassword: tempPassword,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateTempPassword(length int) (string, error) {
	password := make([]byte, length)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))

	for i := range password {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		password[i] = tempPasswordAlphabet[n.Int64()]
	}

	return string(password), nil
}
