package spaces

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
	"github.com/m04kA/Coworkly-BookingService/internal/infra/cache"
	"github.com/m04kA/Coworkly-BookingService/internal/service/spaces/models"
	"github.com/m04kA/Coworkly-BookingService/pkg/ptr"
)

// Моки

type mockSpaceRepo struct {
	mock.Mock
}

func (m *mockSpaceRepo) FindFree(ctx context.Context, locationID int64, from, to time.Time, minCapacity int) ([]*domain.FreeSpace, error) {
	args := m.Called(ctx, locationID, from, to, minCapacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FreeSpace), args.Error(1)
}

func (m *mockSpaceRepo) ListActive(ctx context.Context) ([]*domain.Space, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Space), args.Error(1)
}

func (m *mockSpaceRepo) ListActiveByLocation(ctx context.Context, locationID int64) ([]*domain.Space, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Space), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, locationID int64, from, to time.Time, minCapacity int) ([]*domain.FreeSpace, error) {
	args := m.Called(ctx, locationID, from, to, minCapacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FreeSpace), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, locationID int64, from, to time.Time, minCapacity int, spaces []*domain.FreeSpace) error {
	args := m.Called(ctx, locationID, from, to, minCapacity, spaces)
	return args.Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var (
	from = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	to   = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
)

// Тесты поиска

func TestService_FindFree_InvalidInterval(t *testing.T) {
	svc := NewService(&mockSpaceRepo{}, &mockCache{}, nopLogger{})

	_, err := svc.FindFree(context.Background(), &models.FindFreeRequest{
		LocationID: 1,
		From:       to,
		To:         from,
	})
	require.ErrorIs(t, err, ErrInvalidInterval)

	// Нулевой интервал тоже отклоняется
	_, err = svc.FindFree(context.Background(), &models.FindFreeRequest{
		LocationID: 1,
		From:       from,
		To:         from,
	})
	require.ErrorIs(t, err, ErrInvalidInterval)
}

func TestService_FindFree_InvalidCapacity(t *testing.T) {
	svc := NewService(&mockSpaceRepo{}, &mockCache{}, nopLogger{})

	_, err := svc.FindFree(context.Background(), &models.FindFreeRequest{
		LocationID:  1,
		From:        from,
		To:          to,
		MinCapacity: ptr.Ptr(0),
	})
	require.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestService_FindFree_DefaultCapacity(t *testing.T) {
	repo := &mockSpaceRepo{}
	cacheMock := &mockCache{}

	// Вместимость по умолчанию 1 участвует и в ключе кеша, и в запросе
	cacheMock.On("Get", mock.Anything, int64(1), from, to, 1).
		Return(nil, cache.ErrCacheMiss)
	repo.On("FindFree", mock.Anything, int64(1), from, to, 1).
		Return([]*domain.FreeSpace{{SpaceID: 3, Name: "Desk 3", Capacity: 1}}, nil)
	cacheMock.On("Set", mock.Anything, int64(1), from, to, 1, mock.Anything).
		Return(nil)

	svc := NewService(repo, cacheMock, nopLogger{})

	result, err := svc.FindFree(context.Background(), &models.FindFreeRequest{
		LocationID: 1,
		From:       from,
		To:         to,
	})
	require.NoError(t, err)
	require.Len(t, result.Spaces, 1)
	assert.Equal(t, int64(3), result.Spaces[0].SpaceID)
	repo.AssertExpectations(t)
	cacheMock.AssertExpectations(t)
}

func TestService_FindFree_CacheHitSkipsRepo(t *testing.T) {
	repo := &mockSpaceRepo{}
	cacheMock := &mockCache{}
	cacheMock.On("Get", mock.Anything, int64(1), from, to, 4).
		Return([]*domain.FreeSpace{{SpaceID: 5, Name: "Room B", Capacity: 6}}, nil)

	svc := NewService(repo, cacheMock, nopLogger{})

	result, err := svc.FindFree(context.Background(), &models.FindFreeRequest{
		LocationID:  1,
		From:        from,
		To:          to,
		MinCapacity: ptr.Ptr(4),
	})
	require.NoError(t, err)
	require.Len(t, result.Spaces, 1)
	assert.Equal(t, int64(5), result.Spaces[0].SpaceID)
	repo.AssertNotCalled(t, "FindFree", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_FindFree_CacheErrorsIgnored(t *testing.T) {
	// Недоступный кеш не ломает поиск
	repo := &mockSpaceRepo{}
	cacheMock := &mockCache{}
	cacheMock.On("Get", mock.Anything, int64(1), from, to, 1).
		Return(nil, errors.New("redis: connection refused"))
	repo.On("FindFree", mock.Anything, int64(1), from, to, 1).
		Return([]*domain.FreeSpace{}, nil)
	cacheMock.On("Set", mock.Anything, int64(1), from, to, 1, mock.Anything).
		Return(errors.New("redis: connection refused"))

	svc := NewService(repo, cacheMock, nopLogger{})

	result, err := svc.FindFree(context.Background(), &models.FindFreeRequest{
		LocationID: 1,
		From:       from,
		To:         to,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Spaces)
}
