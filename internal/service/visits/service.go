package visits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Coworkly-BookingService/internal/infra/storage/booking"
	visitRepo "github.com/m04kA/Coworkly-BookingService/internal/infra/storage/visit"
	"github.com/m04kA/Coworkly-BookingService/internal/service/visits/models"
)

// Service сервис учёта фактического присутствия (визитов).
// Визит живёт отдельно от брони: check-in создаёт запись присутствия,
// check-out и sweep закрывают её, статус самой брони не трогается.
type Service struct {
	visitRepo    VisitRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса визитов
func NewService(visitRepo VisitRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		visitRepo:    visitRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// CheckIn открывает визит по бронированию.
// Плановое окончание инициализируется из EndsAt брони. Статус брони не
// проверяется: ранний приход по PENDING-брони допустим, решение о допуске
// уже принято при создании брони.
func (s *Service) CheckIn(ctx context.Context, req *models.CheckInRequest) (*models.VisitResponse, error) {
	s.logger.Info("CheckIn: booking=%d", req.BookingID)

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CheckIn: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("CheckIn: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: CheckIn - booking lookup: %v", ErrInternal, err)
	}

	// Быстрая проверка до вставки. Гонку двух параллельных check-in ловит
	// частичный уникальный индекс в БД, здесь только ранний отказ.
	existing, err := s.visitRepo.GetActiveByBookingID(ctx, req.BookingID)
	if err != nil && !errors.Is(err, visitRepo.ErrVisitNotFound) {
		s.logger.Error("CheckIn: failed to check active visit for booking=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: CheckIn - active visit lookup: %v", ErrInternal, err)
	}
	if existing != nil {
		s.logger.Warn("CheckIn: booking=%d already has active visit id=%d", req.BookingID, existing.ID)
		return nil, ErrVisitAlreadyActive
	}

	now := s.timeProvider.Now()
	visit := &domain.Visit{
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		SpaceID:    booking.SpaceID,
		CheckIn:    now,
		PlannedEnd: booking.EndsAt,
		Status:     domain.VisitActive,
	}

	created, err := s.visitRepo.Create(ctx, visit)
	if err != nil {
		if errors.Is(err, visitRepo.ErrActiveVisitExists) {
			s.logger.Warn("CheckIn: concurrent check-in for booking=%d", req.BookingID)
			return nil, ErrVisitAlreadyActive
		}
		s.logger.Error("CheckIn: failed to create visit for booking=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: CheckIn - create visit: %v", ErrInternal, err)
	}

	s.logger.Info("CheckIn: visit id=%d opened for booking=%d, planned end %s",
		created.ID, created.BookingID, created.PlannedEnd.Format(time.RFC3339))
	return models.FromDomainVisit(created), nil
}

// CheckOut закрывает ACTIVE визит текущим временем.
// Просроченный (OVERDUE) визит закрыть нельзя, он закрывается
// административно после разбора.
func (s *Service) CheckOut(ctx context.Context, visitID int64) (*models.VisitResponse, error) {
	s.logger.Info("CheckOut: visit=%d", visitID)

	visit, err := s.getVisit(ctx, visitID, "CheckOut")
	if err != nil {
		return nil, err
	}

	if !visit.IsActive() {
		s.logger.Warn("CheckOut: visit id=%d is in status %s", visitID, visit.Status)
		return nil, fmt.Errorf("%w: status %s", ErrVisitNotActive, visit.Status)
	}

	now := s.timeProvider.Now()
	if err := s.visitRepo.Complete(ctx, visitID, now); err != nil {
		if errors.Is(err, visitRepo.ErrVisitNotFound) {
			// Конкурентный sweep или второй check-out успели раньше
			s.logger.Warn("CheckOut: visit id=%d changed status concurrently", visitID)
			return nil, ErrVisitNotActive
		}
		s.logger.Error("CheckOut: failed to complete visit id=%d: %v", visitID, err)
		return nil, fmt.Errorf("%w: CheckOut - complete visit: %v", ErrInternal, err)
	}

	visit.CheckOut = &now
	visit.Status = domain.VisitCompleted

	s.logger.Info("CheckOut: visit id=%d completed", visitID)
	return models.FromDomainVisit(visit), nil
}

// Extend продлевает плановое окончание ACTIVE визита.
// Новое окончание должно быть строго позже текущего, сокращение не
// поддерживается.
func (s *Service) Extend(ctx context.Context, visitID int64, req *models.ExtendVisitRequest) (*models.VisitResponse, error) {
	s.logger.Info("ExtendVisit: visit=%d, new planned end %s", visitID, req.NewPlannedEnd.Format(time.RFC3339))

	visit, err := s.getVisit(ctx, visitID, "ExtendVisit")
	if err != nil {
		return nil, err
	}

	if !visit.IsActive() {
		s.logger.Warn("ExtendVisit: visit id=%d is in status %s", visitID, visit.Status)
		return nil, fmt.Errorf("%w: status %s", ErrVisitNotActive, visit.Status)
	}

	if !visit.CanExtendTo(req.NewPlannedEnd) {
		s.logger.Warn("ExtendVisit: visit id=%d new planned end %s is not after current %s",
			visitID, req.NewPlannedEnd.Format(time.RFC3339), visit.PlannedEnd.Format(time.RFC3339))
		return nil, ErrInvalidExtension
	}

	if err := s.visitRepo.UpdatePlannedEnd(ctx, visitID, req.NewPlannedEnd); err != nil {
		if errors.Is(err, visitRepo.ErrVisitNotFound) {
			s.logger.Warn("ExtendVisit: visit id=%d changed status concurrently", visitID)
			return nil, ErrVisitNotActive
		}
		s.logger.Error("ExtendVisit: failed to update visit id=%d: %v", visitID, err)
		return nil, fmt.Errorf("%w: ExtendVisit - update planned end: %v", ErrInternal, err)
	}

	visit.PlannedEnd = req.NewPlannedEnd

	s.logger.Info("ExtendVisit: visit id=%d extended", visitID)
	return models.FromDomainVisit(visit), nil
}

// ListActive получает все открытые визиты, отсортированные по плановому
// окончанию (ASC)
func (s *Service) ListActive(ctx context.Context) (*models.VisitListResponse, error) {
	visits, err := s.visitRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActiveVisits: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainVisitList(visits), nil
}

// ListExpiring получает открытые визиты, плановое окончание которых
// наступает в ближайшие withinMinutes минут. При withinMinutes <= 0
// используется окно по умолчанию.
func (s *Service) ListExpiring(ctx context.Context, withinMinutes int) (*models.VisitListResponse, error) {
	if withinMinutes <= 0 {
		withinMinutes = domain.DefaultExpiringWindowMin
	}

	now := s.timeProvider.Now()
	to := now.Add(time.Duration(withinMinutes) * time.Minute)

	visits, err := s.visitRepo.ListExpiring(ctx, now, to)
	if err != nil {
		s.logger.Error("ListExpiringVisits: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListExpiring - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainVisitList(visits), nil
}

// SweepOverdue переводит в OVERDUE все открытые визиты с истекшим плановым
// окончанием. Идемпотентен: повторный вызов без новых просроченных визитов
// возвращает пустой результат.
func (s *Service) SweepOverdue(ctx context.Context) (*models.SweepResponse, error) {
	now := s.timeProvider.Now()

	marked, err := s.visitRepo.MarkOverdue(ctx, now)
	if err != nil {
		s.logger.Error("SweepOverdue: repository error: %v", err)
		return nil, fmt.Errorf("%w: SweepOverdue - repository error: %v", ErrInternal, err)
	}

	if len(marked) > 0 {
		s.logger.Info("SweepOverdue: marked %d visits overdue", len(marked))
	}

	list := models.FromDomainVisitList(marked)
	return &models.SweepResponse{
		MarkedOverdue: len(list.Visits),
		Visits:        list.Visits,
	}, nil
}

func (s *Service) getVisit(ctx context.Context, visitID int64, op string) (*domain.Visit, error) {
	visit, err := s.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		if errors.Is(err, visitRepo.ErrVisitNotFound) {
			s.logger.Warn("%s: visit id=%d not found", op, visitID)
			return nil, ErrVisitNotFound
		}
		s.logger.Error("%s: failed to get visit id=%d: %v", op, visitID, err)
		return nil, fmt.Errorf("%w: %s - visit lookup: %v", ErrInternal, op, err)
	}
	return visit, nil
}
