package visits

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Coworkly-BookingService/internal/infra/storage/booking"
	visitRepo "github.com/m04kA/Coworkly-BookingService/internal/infra/storage/visit"
	"github.com/m04kA/Coworkly-BookingService/internal/service/visits/models"
)

// Моки

type mockVisitRepo struct {
	mock.Mock
}

func (m *mockVisitRepo) Create(ctx context.Context, visit *domain.Visit) (*domain.Visit, error) {
	args := m.Called(ctx, visit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Visit), args.Error(1)
}

func (m *mockVisitRepo) GetByID(ctx context.Context, id int64) (*domain.Visit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Visit), args.Error(1)
}

func (m *mockVisitRepo) GetActiveByBookingID(ctx context.Context, bookingID int64) (*domain.Visit, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Visit), args.Error(1)
}

func (m *mockVisitRepo) ListActive(ctx context.Context) ([]*domain.Visit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Visit), args.Error(1)
}

func (m *mockVisitRepo) ListExpiring(ctx context.Context, from, to time.Time) ([]*domain.Visit, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Visit), args.Error(1)
}

func (m *mockVisitRepo) Complete(ctx context.Context, id int64, checkOut time.Time) error {
	args := m.Called(ctx, id, checkOut)
	return args.Error(0)
}

func (m *mockVisitRepo) UpdatePlannedEnd(ctx context.Context, id int64, plannedEnd time.Time) error {
	args := m.Called(ctx, id, plannedEnd)
	return args.Error(0)
}

func (m *mockVisitRepo) MarkOverdue(ctx context.Context, now time.Time) ([]*domain.Visit, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Visit), args.Error(1)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestService(visitsRepo *mockVisitRepo, bookingsRepo *mockBookingRepo) *Service {
	return NewService(visitsRepo, bookingsRepo, nopLogger{}).WithTimeProvider(&fakeClock{now: testNow})
}

// Тесты check-in

func TestService_CheckIn_PendingBookingAllowed(t *testing.T) {
	// Ранний приход по неподтверждённой броне допустим
	booking := &domain.Booking{
		ID:      10,
		UserID:  7,
		SpaceID: 3,
		EndsAt:  testNow.Add(4 * time.Hour),
		Status:  domain.StatusPending,
	}

	bookings := &mockBookingRepo{}
	bookings.On("GetByID", mock.Anything, int64(10)).Return(booking, nil)

	visitsRepo := &mockVisitRepo{}
	visitsRepo.On("GetActiveByBookingID", mock.Anything, int64(10)).
		Return(nil, visitRepo.ErrVisitNotFound)
	visitsRepo.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.Visit) bool {
		return v.BookingID == 10 && v.UserID == 7 && v.SpaceID == 3 &&
			v.Status == domain.VisitActive && v.PlannedEnd.Equal(booking.EndsAt)
	})).Return(&domain.Visit{
		ID:         1,
		BookingID:  10,
		UserID:     7,
		SpaceID:    3,
		CheckIn:    testNow,
		PlannedEnd: booking.EndsAt,
		Status:     domain.VisitActive,
	}, nil)

	svc := newTestService(visitsRepo, bookings)

	result, err := svc.CheckIn(context.Background(), &models.CheckInRequest{BookingID: 10})
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", result.Status)
	assert.Equal(t, booking.EndsAt, result.PlannedEnd, "плановое окончание берётся из брони")
}

func TestService_CheckIn_BookingNotFound(t *testing.T) {
	bookings := &mockBookingRepo{}
	bookings.On("GetByID", mock.Anything, int64(99)).
		Return(nil, bookingRepo.ErrBookingNotFound)

	svc := newTestService(&mockVisitRepo{}, bookings)

	_, err := svc.CheckIn(context.Background(), &models.CheckInRequest{BookingID: 99})
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_CheckIn_DuplicateRejected(t *testing.T) {
	bookings := &mockBookingRepo{}
	bookings.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Booking{ID: 10, Status: domain.StatusConfirmed}, nil)

	visitsRepo := &mockVisitRepo{}
	visitsRepo.On("GetActiveByBookingID", mock.Anything, int64(10)).
		Return(&domain.Visit{ID: 1, BookingID: 10, Status: domain.VisitActive}, nil)

	svc := newTestService(visitsRepo, bookings)

	_, err := svc.CheckIn(context.Background(), &models.CheckInRequest{BookingID: 10})
	require.ErrorIs(t, err, ErrVisitAlreadyActive)
	visitsRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CheckIn_ConcurrentDuplicateCaughtByIndex(t *testing.T) {
	// Предварительная проверка прошла, но параллельный check-in успел
	// вставить визит первым: уникальный индекс в БД отдаёт конфликт
	bookings := &mockBookingRepo{}
	bookings.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Booking{ID: 10, Status: domain.StatusConfirmed}, nil)

	visitsRepo := &mockVisitRepo{}
	visitsRepo.On("GetActiveByBookingID", mock.Anything, int64(10)).
		Return(nil, visitRepo.ErrVisitNotFound)
	visitsRepo.On("Create", mock.Anything, mock.Anything).
		Return(nil, visitRepo.ErrActiveVisitExists)

	svc := newTestService(visitsRepo, bookings)

	_, err := svc.CheckIn(context.Background(), &models.CheckInRequest{BookingID: 10})
	require.ErrorIs(t, err, ErrVisitAlreadyActive)
}

// Тесты check-out

func TestService_CheckOut_Success(t *testing.T) {
	visitsRepo := &mockVisitRepo{}
	visitsRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Visit{ID: 1, Status: domain.VisitActive, PlannedEnd: testNow.Add(time.Hour)}, nil)
	visitsRepo.On("Complete", mock.Anything, int64(1), testNow).Return(nil)

	svc := newTestService(visitsRepo, &mockBookingRepo{})

	result, err := svc.CheckOut(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", result.Status)
	require.NotNil(t, result.CheckOut)
	assert.Equal(t, testNow, *result.CheckOut)
}

func TestService_CheckOut_NotActive(t *testing.T) {
	visitsRepo := &mockVisitRepo{}
	visitsRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Visit{ID: 1, Status: domain.VisitCompleted}, nil)

	svc := newTestService(visitsRepo, &mockBookingRepo{})

	_, err := svc.CheckOut(context.Background(), 1)
	require.ErrorIs(t, err, ErrVisitNotActive)
	visitsRepo.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

// Тесты продления

func TestService_Extend_Success(t *testing.T) {
	plannedEnd := testNow.Add(time.Hour)
	newEnd := plannedEnd.Add(time.Hour)

	visitsRepo := &mockVisitRepo{}
	visitsRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Visit{ID: 1, Status: domain.VisitActive, PlannedEnd: plannedEnd}, nil)
	visitsRepo.On("UpdatePlannedEnd", mock.Anything, int64(1), newEnd).Return(nil)

	svc := newTestService(visitsRepo, &mockBookingRepo{})

	result, err := svc.Extend(context.Background(), 1, &models.ExtendVisitRequest{NewPlannedEnd: newEnd})
	require.NoError(t, err)
	assert.Equal(t, newEnd, result.PlannedEnd)
}

func TestService_Extend_NotMonotonic(t *testing.T) {
	plannedEnd := testNow.Add(time.Hour)

	visitsRepo := &mockVisitRepo{}
	visitsRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Visit{ID: 1, Status: domain.VisitActive, PlannedEnd: plannedEnd}, nil)

	svc := newTestService(visitsRepo, &mockBookingRepo{})

	// Равное текущему окончание отклоняется
	_, err := svc.Extend(context.Background(), 1, &models.ExtendVisitRequest{NewPlannedEnd: plannedEnd})
	require.ErrorIs(t, err, ErrInvalidExtension)

	// Более раннее тоже
	_, err = svc.Extend(context.Background(), 1, &models.ExtendVisitRequest{NewPlannedEnd: plannedEnd.Add(-time.Minute)})
	require.ErrorIs(t, err, ErrInvalidExtension)

	visitsRepo.AssertNotCalled(t, "UpdatePlannedEnd", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Extend_NotActive(t *testing.T) {
	visitsRepo := &mockVisitRepo{}
	visitsRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Visit{ID: 1, Status: domain.VisitOverdue, PlannedEnd: testNow.Add(-time.Hour)}, nil)

	svc := newTestService(visitsRepo, &mockBookingRepo{})

	_, err := svc.Extend(context.Background(), 1, &models.ExtendVisitRequest{NewPlannedEnd: testNow.Add(time.Hour)})
	require.ErrorIs(t, err, ErrVisitNotActive)
}

// Тесты sweep

func TestService_SweepOverdue_MarksAndReturns(t *testing.T) {
	visitsRepo := &mockVisitRepo{}
	visitsRepo.On("MarkOverdue", mock.Anything, testNow).
		Return([]*domain.Visit{
			{ID: 1, Status: domain.VisitOverdue},
			{ID: 2, Status: domain.VisitOverdue},
		}, nil)

	svc := newTestService(visitsRepo, &mockBookingRepo{})

	result, err := svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.MarkedOverdue)
}

func TestService_SweepOverdue_Idempotent(t *testing.T) {
	// Повторный проход без новых просроченных визитов ничего не меняет
	visitsRepo := &mockVisitRepo{}
	visitsRepo.On("MarkOverdue", mock.Anything, testNow).
		Return([]*domain.Visit{}, nil)

	svc := newTestService(visitsRepo, &mockBookingRepo{})

	result, err := svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.MarkedOverdue)
	assert.Empty(t, result.Visits)
}

// Тесты списков

func TestService_ListExpiring_DefaultWindow(t *testing.T) {
	expectedTo := testNow.Add(time.Duration(domain.DefaultExpiringWindowMin) * time.Minute)

	visitsRepo := &mockVisitRepo{}
	visitsRepo.On("ListExpiring", mock.Anything, testNow, expectedTo).
		Return([]*domain.Visit{{ID: 1, Status: domain.VisitActive}}, nil)

	svc := newTestService(visitsRepo, &mockBookingRepo{})

	result, err := svc.ListExpiring(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, result.Visits, 1)
	visitsRepo.AssertExpectations(t)
}
