package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
	userClient "github.com/m04kA/Coworkly-BookingService/internal/integrations/userservice"
	"github.com/m04kA/Coworkly-BookingService/internal/service/penalties"
)

// Моки

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) CountActiveOverlapping(ctx context.Context, spaceID int64, from, to time.Time) (int, error) {
	args := m.Called(ctx, spaceID, from, to)
	return args.Int(0), args.Error(1)
}

type mockPenaltyValidator struct {
	mock.Mock
}

func (m *mockPenaltyValidator) ValidateBooking(ctx context.Context, userID int64, duration time.Duration) error {
	args := m.Called(ctx, userID, duration)
	return args.Error(0)
}

type mockUserClient struct {
	mock.Mock
}

func (m *mockUserClient) GetUser(ctx context.Context, userID int64) (*userClient.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userClient.User), args.Error(1)
}

// fakeTxManager сериализует транзакции мьютексом, имитируя
// сериализуемый уровень изоляции для конкурентных заявок
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var (
	startsAt = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	endsAt   = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
)

func activeUser(id int64) *userClient.User {
	return &userClient.User{ID: id, Status: "ACTIVE"}
}

func validRequest(userID int64) *Request {
	return &Request{
		UserID:   userID,
		SpaceID:  3,
		StartsAt: startsAt,
		EndsAt:   endsAt,
	}
}

// Тесты валидации и порядка проверок

func TestUseCase_Execute_InvalidInterval(t *testing.T) {
	uc := NewUseCase(&mockBookingRepo{}, &mockPenaltyValidator{}, &mockUserClient{}, &fakeTxManager{}, nopLogger{})

	req := validRequest(7)
	req.EndsAt = req.StartsAt

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInterval)
}

func TestUseCase_Execute_UserNotFound(t *testing.T) {
	users := &mockUserClient{}
	users.On("GetUser", mock.Anything, int64(7)).Return(nil, userClient.ErrUserNotFound)

	uc := NewUseCase(&mockBookingRepo{}, &mockPenaltyValidator{}, users, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(7))
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUseCase_Execute_BlockedUser(t *testing.T) {
	users := &mockUserClient{}
	users.On("GetUser", mock.Anything, int64(7)).
		Return(&userClient.User{ID: 7, Status: "BLOCKED"}, nil)

	validator := &mockPenaltyValidator{}

	uc := NewUseCase(&mockBookingRepo{}, validator, users, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(7))
	require.ErrorIs(t, err, ErrUserBlocked)
	validator.AssertNotCalled(t, "ValidateBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_Execute_TimedOutUser(t *testing.T) {
	users := &mockUserClient{}
	users.On("GetUser", mock.Anything, int64(7)).Return(activeUser(7), nil)

	validator := &mockPenaltyValidator{}
	validator.On("ValidateBooking", mock.Anything, int64(7), 2*time.Hour).
		Return(penalties.ErrUserTimedOut)

	repo := &mockBookingRepo{}

	uc := NewUseCase(repo, validator, users, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(7))
	require.ErrorIs(t, err, ErrUserTimedOut)
	repo.AssertNotCalled(t, "CountActiveOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_Execute_DurationExceeded(t *testing.T) {
	users := &mockUserClient{}
	users.On("GetUser", mock.Anything, int64(7)).Return(activeUser(7), nil)

	validator := &mockPenaltyValidator{}
	validator.On("ValidateBooking", mock.Anything, int64(7), 2*time.Hour).
		Return(penalties.ErrDurationExceeded)

	uc := NewUseCase(&mockBookingRepo{}, validator, users, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(7))
	require.ErrorIs(t, err, ErrDurationExceeded)
}

func TestUseCase_Execute_SlotTaken(t *testing.T) {
	users := &mockUserClient{}
	users.On("GetUser", mock.Anything, int64(7)).Return(activeUser(7), nil)

	validator := &mockPenaltyValidator{}
	validator.On("ValidateBooking", mock.Anything, int64(7), 2*time.Hour).Return(nil)

	repo := &mockBookingRepo{}
	repo.On("CountActiveOverlapping", mock.Anything, int64(3), startsAt, endsAt).Return(1, nil)

	uc := NewUseCase(repo, validator, users, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(7))
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_Success(t *testing.T) {
	users := &mockUserClient{}
	users.On("GetUser", mock.Anything, int64(7)).Return(activeUser(7), nil)

	validator := &mockPenaltyValidator{}
	validator.On("ValidateBooking", mock.Anything, int64(7), 2*time.Hour).Return(nil)

	repo := &mockBookingRepo{}
	repo.On("CountActiveOverlapping", mock.Anything, int64(3), startsAt, endsAt).Return(0, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.UserID == 7 && b.SpaceID == 3 &&
			b.Status == domain.StatusPending && b.TotalCents == 0
	})).Return(&domain.Booking{
		ID:       1,
		UserID:   7,
		SpaceID:  3,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Status:   domain.StatusPending,
	}, nil)

	uc := NewUseCase(repo, validator, users, &fakeTxManager{}, nopLogger{})

	result, err := uc.Execute(context.Background(), validRequest(7))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, "PENDING", result.Status)
	assert.Equal(t, int64(0), result.TotalCents)
}

// Конкурентный допуск

// memBookingRepo репозиторий в памяти для проверки допуска под гонкой.
// Корректен только внутри сериализованного fakeTxManager.
type memBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (r *memBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	created := *booking
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	r.bookings = append(r.bookings, &created)
	return &created, nil
}

func (r *memBookingRepo) CountActiveOverlapping(ctx context.Context, spaceID int64, from, to time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, b := range r.bookings {
		if b.SpaceID == spaceID && b.BlocksSlot() && b.Overlaps(from, to) {
			count++
		}
	}
	return count, nil
}

func TestUseCase_Execute_ConcurrentAdmission_ExactlyOneWinner(t *testing.T) {
	const workers = 20

	users := &mockUserClient{}
	users.On("GetUser", mock.Anything, mock.Anything).Return(activeUser(1), nil)

	validator := &mockPenaltyValidator{}
	validator.On("ValidateBooking", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	repo := &memBookingRepo{}
	uc := NewUseCase(repo, validator, users, &fakeTxManager{}, nopLogger{})

	var wg sync.WaitGroup
	errs := make([]error, workers)

	// Все воркеры претендуют на один интервал одного пространства
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validRequest(int64(idx+1)))
			errs[idx] = err
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, ErrSlotNotAvailable)
		}
	}

	assert.Equal(t, 1, winners, "под гонкой допускается ровно одна бронь")
	assert.Len(t, repo.bookings, 1)
}

func TestUseCase_Execute_AdjacentIntervalsBothAdmitted(t *testing.T) {
	// Касание границ пересечением не считается
	users := &mockUserClient{}
	users.On("GetUser", mock.Anything, mock.Anything).Return(activeUser(1), nil)

	validator := &mockPenaltyValidator{}
	validator.On("ValidateBooking", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	repo := &memBookingRepo{}
	uc := NewUseCase(repo, validator, users, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(1))
	require.NoError(t, err)

	second := &Request{
		UserID:   2,
		SpaceID:  3,
		StartsAt: endsAt,
		EndsAt:   endsAt.Add(time.Hour),
	}
	_, err = uc.Execute(context.Background(), second)
	require.NoError(t, err)
	assert.Len(t, repo.bookings, 2)
}
