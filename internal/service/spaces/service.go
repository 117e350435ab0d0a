package spaces

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
	"github.com/m04kA/Coworkly-BookingService/internal/infra/cache"
	"github.com/m04kA/Coworkly-BookingService/internal/service/spaces/models"
)

// Service сервис пространств: поиск свободных в интервале и листинги.
// Ответ оракула доступности (SQL запрос с проверкой пересечений) трактуется
// как истина, кеш лишь сокращает путь для повторных запросов.
type Service struct {
	spaceRepo SpaceRepository
	cache     FreeSpacesCache
	logger    Logger
}

// NewService создает новый экземпляр сервиса пространств
func NewService(spaceRepo SpaceRepository, cache FreeSpacesCache, logger Logger) *Service {
	return &Service{
		spaceRepo: spaceRepo,
		cache:     cache,
		logger:    logger,
	}
}

// FindFree ищет свободные пространства локации в интервале [from, to)
// с вместимостью не меньше запрошенной (по умолчанию 1).
// Кеш best-effort: ошибки кеша логируются и не прерывают поиск.
func (s *Service) FindFree(ctx context.Context, req *models.FindFreeRequest) (*models.FreeSpaceListResponse, error) {
	if !req.To.After(req.From) {
		return nil, ErrInvalidInterval
	}

	minCapacity := domain.DefaultMinCapacity
	if req.MinCapacity != nil {
		if *req.MinCapacity < 1 {
			return nil, ErrInvalidCapacity
		}
		minCapacity = *req.MinCapacity
	}

	cached, err := s.cache.Get(ctx, req.LocationID, req.From, req.To, minCapacity)
	if err == nil {
		return models.FromDomainFreeSpaces(cached), nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("FindFree: cache lookup failed: %v", err)
	}

	spaces, err := s.spaceRepo.FindFree(ctx, req.LocationID, req.From, req.To, minCapacity)
	if err != nil {
		s.logger.Error("FindFree: repository error for location=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: FindFree - repository error: %v", ErrInternal, err)
	}

	if err := s.cache.Set(ctx, req.LocationID, req.From, req.To, minCapacity, spaces); err != nil {
		s.logger.Warn("FindFree: cache store failed: %v", err)
	}

	return models.FromDomainFreeSpaces(spaces), nil
}

// ListActive получает все активные пространства, отсортированные по имени
func (s *Service) ListActive(ctx context.Context) (*models.SpaceListResponse, error) {
	spaces, err := s.spaceRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActiveSpaces: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSpaces(spaces), nil
}

// ListActiveByLocation получает активные пространства локации
func (s *Service) ListActiveByLocation(ctx context.Context, locationID int64) (*models.SpaceListResponse, error) {
	spaces, err := s.spaceRepo.ListActiveByLocation(ctx, locationID)
	if err != nil {
		s.logger.Error("ListActiveSpacesByLocation: repository error for location=%d: %v", locationID, err)
		return nil, fmt.Errorf("%w: ListActiveByLocation - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSpaces(spaces), nil
}
