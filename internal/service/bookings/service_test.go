package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Coworkly-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/Coworkly-BookingService/internal/service/bookings/models"
)

// Моки

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

func (m *mockBookingRepo) GetByUserIDWithSpace(ctx context.Context, userID int64) ([]*domain.BookingWithSpace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BookingWithSpace), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Тесты подтверждения

func TestService_Confirm_FromPending(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Booking{ID: 10, Status: domain.StatusPending}, nil)
	repo.On("UpdateStatusFrom", mock.Anything, int64(10), domain.StatusPending, domain.StatusConfirmed).
		Return(nil)

	svc := NewService(repo, nopLogger{})

	result, err := svc.Confirm(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", result.Status)
	repo.AssertExpectations(t)
}

func TestService_Confirm_AlreadyConfirmed(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Booking{ID: 10, Status: domain.StatusConfirmed}, nil)

	svc := NewService(repo, nopLogger{})

	_, err := svc.Confirm(context.Background(), 10)
	require.ErrorIs(t, err, ErrInvalidTransition)
	repo.AssertNotCalled(t, "UpdateStatusFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Confirm_TerminalStatuses(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusCanceled,
		domain.StatusCompleted,
		domain.StatusNoShow,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := &mockBookingRepo{}
			repo.On("GetByID", mock.Anything, int64(10)).
				Return(&domain.Booking{ID: 10, Status: status}, nil)

			svc := NewService(repo, nopLogger{})

			_, err := svc.Confirm(context.Background(), 10)
			require.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestService_Confirm_NotFound(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("GetByID", mock.Anything, int64(99)).
		Return(nil, bookingRepo.ErrBookingNotFound)

	svc := NewService(repo, nopLogger{})

	_, err := svc.Confirm(context.Background(), 99)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_Confirm_ConcurrentStatusChange(t *testing.T) {
	// Между чтением и compare-and-set статус изменился
	repo := &mockBookingRepo{}
	repo.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Booking{ID: 10, Status: domain.StatusPending}, nil)
	repo.On("UpdateStatusFrom", mock.Anything, int64(10), domain.StatusPending, domain.StatusConfirmed).
		Return(bookingRepo.ErrStatusConflict)

	svc := NewService(repo, nopLogger{})

	_, err := svc.Confirm(context.Background(), 10)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

// Тесты доступа

func TestService_ListForUser_OwnerAllowed(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("GetByUserIDWithSpace", mock.Anything, int64(7)).
		Return([]*domain.BookingWithSpace{
			{
				Booking:   domain.Booking{ID: 1, UserID: 7, StartsAt: time.Now()},
				SpaceName: "Room A",
			},
		}, nil)

	svc := NewService(repo, nopLogger{})

	result, err := svc.ListForUser(context.Background(), 7, models.Caller{UserID: 7})
	require.NoError(t, err)
	assert.Len(t, result.Bookings, 1)
	assert.Equal(t, "Room A", result.Bookings[0].SpaceName)
}

func TestService_ListForUser_StrangerDenied(t *testing.T) {
	repo := &mockBookingRepo{}

	svc := NewService(repo, nopLogger{})

	_, err := svc.ListForUser(context.Background(), 7, models.Caller{UserID: 8})
	require.ErrorIs(t, err, ErrAccessDenied)
	repo.AssertNotCalled(t, "GetByUserIDWithSpace", mock.Anything, mock.Anything)
}

func TestService_ListForUser_AdminAllowed(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("GetByUserIDWithSpace", mock.Anything, int64(7)).
		Return([]*domain.BookingWithSpace{}, nil)

	svc := NewService(repo, nopLogger{})

	result, err := svc.ListForUser(context.Background(), 7, models.Caller{UserID: 1, IsAdmin: true})
	require.NoError(t, err)
	assert.Empty(t, result.Bookings)
}

func TestService_GetByID_StrangerDenied(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Booking{ID: 10, UserID: 7}, nil)

	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 10, models.Caller{UserID: 8})
	require.ErrorIs(t, err, ErrAccessDenied)
}
