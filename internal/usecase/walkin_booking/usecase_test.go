package walkin_booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
	"github.com/m04kA/Coworkly-BookingService/internal/integrations/userservice"
	"github.com/m04kA/Coworkly-BookingService/internal/usecase/create_booking"
)

// Моки

type mockUserClient struct {
	mock.Mock
}

func (m *mockUserClient) FindByEmail(ctx context.Context, email string) (*userservice.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userservice.User), args.Error(1)
}

func (m *mockUserClient) Register(ctx context.Context, request *userservice.RegisterRequest) (*userservice.User, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userservice.User), args.Error(1)
}

type mockBookingCreator struct {
	mock.Mock
}

func (m *mockBookingCreator) Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*create_booking.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var (
	startsAt = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	endsAt   = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
)

func walkinRequest(email string) *Request {
	return &Request{
		Email:    email,
		FullName: "Иван Петров",
		SpaceID:  3,
		StartsAt: startsAt,
		EndsAt:   endsAt,
	}
}

func pendingResponse(userID int64) *create_booking.Response {
	return &create_booking.Response{
		ID:       100,
		UserID:   userID,
		SpaceID:  3,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Status:   "PENDING",
	}
}

func TestUseCase_Execute_EmptyEmail(t *testing.T) {
	uc := NewUseCase(&mockUserClient{}, &mockBookingCreator{}, nopLogger{})

	_, err := uc.Execute(context.Background(), walkinRequest("   "))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_ExistingUser(t *testing.T) {
	users := &mockUserClient{}
	// Email нормализуется перед поиском
	users.On("FindByEmail", mock.Anything, "ivan@example.com").
		Return(&userservice.User{ID: 7, Status: "ACTIVE"}, nil)

	creator := &mockBookingCreator{}
	creator.On("Execute", mock.Anything, mock.MatchedBy(func(req *create_booking.Request) bool {
		return req.UserID == 7 && req.SpaceID == 3 &&
			req.StartsAt.Equal(startsAt) && req.EndsAt.Equal(endsAt)
	})).Return(pendingResponse(7), nil)

	uc := NewUseCase(users, creator, nopLogger{})

	result, err := uc.Execute(context.Background(), walkinRequest("  Ivan@Example.COM "))
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.UserID)
	assert.Equal(t, int64(100), result.BookingID)
	assert.True(t, result.ExistingUser)
	assert.Nil(t, result.TempPassword, "существующему пользователю пароль не выдается")
	users.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_NewUserRegistered(t *testing.T) {
	users := &mockUserClient{}
	users.On("FindByEmail", mock.Anything, "new@example.com").
		Return(nil, userservice.ErrUserNotFound)

	var issuedPassword string
	users.On("Register", mock.Anything, mock.MatchedBy(func(req *userservice.RegisterRequest) bool {
		issuedPassword = req.Password
		return req.Email == "new@example.com" &&
			req.FullName == "Иван Петров" &&
			req.Role == "RESIDENT"
	})).Return(&userservice.User{ID: 8, Status: "ACTIVE"}, nil)

	creator := &mockBookingCreator{}
	creator.On("Execute", mock.Anything, mock.Anything).Return(pendingResponse(8), nil)

	uc := NewUseCase(users, creator, nopLogger{})

	result, err := uc.Execute(context.Background(), walkinRequest("new@example.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(8), result.UserID)
	assert.False(t, result.ExistingUser)

	require.NotNil(t, result.TempPassword)
	assert.Equal(t, issuedPassword, *result.TempPassword)
	assert.Len(t, *result.TempPassword, domain.TempPasswordLength)
	for _, r := range *result.TempPassword {
		assert.True(t, strings.ContainsRune(tempPasswordAlphabet, r),
			"символ %q вне алфавита пароля", r)
	}
}

func TestUseCase_Execute_AdmissionErrorsPassThrough(t *testing.T) {
	// Ошибки допуска доходят до вызывающего без переупаковки
	users := &mockUserClient{}
	users.On("FindByEmail", mock.Anything, "ivan@example.com").
		Return(&userservice.User{ID: 7, Status: "ACTIVE"}, nil)

	creator := &mockBookingCreator{}
	creator.On("Execute", mock.Anything, mock.Anything).
		Return(nil, create_booking.ErrSlotNotAvailable)

	uc := NewUseCase(users, creator, nopLogger{})

	_, err := uc.Execute(context.Background(), walkinRequest("ivan@example.com"))
	require.ErrorIs(t, err, create_booking.ErrSlotNotAvailable)
}
