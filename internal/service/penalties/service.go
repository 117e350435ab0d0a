package penalties

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
	penaltyRepo "github.com/m04kA/Coworkly-BookingService/internal/infra/storage/penalty"
	userClient "github.com/m04kA/Coworkly-BookingService/internal/integrations/userservice"
	"github.com/m04kA/Coworkly-BookingService/internal/service/penalties/models"
)

// Service сервис учёта штрафов (penalty ledger).
// Создает и отзывает штрафы, считает их активность и валидирует
// запросы на бронирование против действующих ограничений.
type Service struct {
	penaltyRepo  PenaltyRepository
	userClient   UserServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса штрафов
func NewService(penaltyRepo PenaltyRepository, userClient UserServiceClient, logger Logger) *Service {
	return &Service{
		penaltyRepo:  penaltyRepo,
		userClient:   userClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Create создает штраф для пользователя.
// Для MAX_DURATION_LIMIT обязателен limitMinutes >= 1,
// для TIMEOUT обязателен expiresAt.
func (s *Service) Create(ctx context.Context, req *models.CreatePenaltyRequest) (*models.PenaltyResponse, error) {
	s.logger.Info("CreatePenalty: user=%d, type=%s", req.UserID, req.Type)

	penaltyType, err := models.ToDomainPenaltyType(req.Type)
	if err != nil {
		s.logger.Warn("CreatePenalty: invalid type=%s for user=%d", req.Type, req.UserID)
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidPayload, req.Type)
	}

	if err := validatePayload(penaltyType, req); err != nil {
		s.logger.Warn("CreatePenalty: payload validation failed for user=%d: %v", req.UserID, err)
		return nil, err
	}

	if err := s.ensureUserActive(ctx, req.UserID); err != nil {
		return nil, err
	}

	penalty := &domain.Penalty{
		UserID:           req.UserID,
		Type:             penaltyType,
		Reason:           req.Reason,
		LimitMinutes:     req.LimitMinutes,
		AmountCents:      req.AmountCents,
		ExpiresAt:        req.ExpiresAt,
		CreatedByAdminID: req.CreatedByAdminID,
	}

	created, err := s.penaltyRepo.Create(ctx, penalty)
	if err != nil {
		s.logger.Error("CreatePenalty: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreatePenalty: successfully created penalty id=%d for user=%d", created.ID, created.UserID)
	return models.FromDomainPenalty(created, s.timeProvider.Now()), nil
}

// Revoke отзывает штраф. Повторный отзыв уже отозванного штрафа считается
// успехом (no-op), метка времени отзыва не перезаписывается.
func (s *Service) Revoke(ctx context.Context, id int64) (*models.PenaltyResponse, error) {
	s.logger.Info("RevokePenalty: revoking penalty id=%d", id)

	now := s.timeProvider.Now()
	revoked, err := s.penaltyRepo.Revoke(ctx, id, now)
	if err != nil {
		if errors.Is(err, penaltyRepo.ErrPenaltyNotFound) {
			s.logger.Warn("RevokePenalty: penalty id=%d not found", id)
			return nil, ErrPenaltyNotFound
		}
		s.logger.Error("RevokePenalty: repository error for penalty id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Revoke - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RevokePenalty: penalty id=%d revoked", id)
	return models.FromDomainPenalty(revoked, now), nil
}

// List получает штрафы по фильтру (админский список),
// отсортированные по времени создания (DESC)
func (s *Service) List(ctx context.Context, filter domain.PenaltyFilter) (*models.PenaltyListResponse, error) {
	now := s.timeProvider.Now()

	penalties, err := s.penaltyRepo.GetByFilter(ctx, filter, now)
	if err != nil {
		s.logger.Error("ListPenalties: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPenaltyList(penalties, now), nil
}

// ListActiveForUser получает активные на текущий момент штрафы пользователя,
// отсортированные по времени создания (DESC - сначала новые)
func (s *Service) ListActiveForUser(ctx context.Context, userID int64) (*models.PenaltyListResponse, error) {
	now := s.timeProvider.Now()

	penalties, err := s.penaltyRepo.GetActiveByUserID(ctx, userID, now)
	if err != nil {
		s.logger.Error("ListActiveForUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListActiveForUser - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPenaltyList(penalties, now), nil
}

// ValidateBooking проверяет, что активные штрафы пользователя не запрещают
// бронирование запрошенной длительности.
//
// Порядок проверки детерминирован: сначала все TIMEOUT, затем
// MAX_DURATION_LIMIT, независимо от порядка записей в реестре.
func (s *Service) ValidateBooking(ctx context.Context, userID int64, duration time.Duration) error {
	now := s.timeProvider.Now()

	active, err := s.penaltyRepo.GetActiveByUserID(ctx, userID, now)
	if err != nil {
		s.logger.Error("ValidateBooking: repository error for user=%d: %v", userID, err)
		return fmt.Errorf("%w: ValidateBooking - repository error: %v", ErrInternal, err)
	}

	for _, p := range active {
		if p.Type == domain.PenaltyTimeout {
			s.logger.Warn("ValidateBooking: user=%d is timed out by penalty id=%d", userID, p.ID)
			if p.ExpiresAt != nil {
				return fmt.Errorf("%w: until %s", ErrUserTimedOut, p.ExpiresAt.Format(time.RFC3339))
			}
			return fmt.Errorf("%w: until revoked", ErrUserTimedOut)
		}
	}

	requestedMinutes := int64(duration.Minutes())
	for _, p := range active {
		if p.Type == domain.PenaltyMaxDurationLimit && p.LimitMinutes != nil {
			if requestedMinutes > int64(*p.LimitMinutes) {
				s.logger.Warn("ValidateBooking: user=%d requested %d min, limit is %d min (penalty id=%d)",
					userID, requestedMinutes, *p.LimitMinutes, p.ID)
				return fmt.Errorf("%w: max %d minutes", ErrDurationExceeded, *p.LimitMinutes)
			}
		}
	}

	return nil
}

func (s *Service) ensureUserActive(ctx context.Context, userID int64) error {
	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("ensureUserActive: user id=%d not found", userID)
			return ErrUserNotFound
		}
		s.logger.Error("ensureUserActive: failed to get user id=%d: %v", userID, err)
		return fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	if user.IsBlocked() {
		s.logger.Warn("ensureUserActive: user id=%d is blocked", userID)
		return ErrUserBlocked
	}

	return nil
}

// validatePayload проверяет обязательные поля для выбранного типа штрафа
func validatePayload(penaltyType domain.PenaltyType, req *models.CreatePenaltyRequest) error {
	if penaltyType == domain.PenaltyMaxDurationLimit &&
		(req.LimitMinutes == nil || *req.LimitMinutes < domain.MinPenaltyLimitMinutes) {
		return fmt.Errorf("%w: limitMinutes must be >= %d for MAX_DURATION_LIMIT",
			ErrInvalidPayload, domain.MinPenaltyLimitMinutes)
	}
	if penaltyType == domain.PenaltyTimeout && req.ExpiresAt == nil {
		return fmt.Errorf("%w: expiresAt is required for TIMEOUT", ErrInvalidPayload)
	}
	return nil
}
