package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Coworkly-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/Coworkly-BookingService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований.
// Создание брони с проверкой доступности вынесено в usecase/create_booking,
// здесь остаются переходы статусов и чтение.
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Confirm переводит бронирование PENDING -> CONFIRMED.
// Переход выполняется compare-and-set в SQL, конкурентное изменение статуса
// возвращает ErrInvalidTransition.
func (s *Service) Confirm(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("ConfirmBooking: booking=%d", bookingID)

	booking, err := s.getBooking(ctx, bookingID, "ConfirmBooking")
	if err != nil {
		return nil, err
	}

	if !booking.CanBeConfirmed() {
		s.logger.Warn("ConfirmBooking: booking id=%d is in status %s", bookingID, booking.Status)
		return nil, fmt.Errorf("%w: cannot confirm from %s", ErrInvalidTransition, booking.Status)
	}

	if err := s.bookingRepo.UpdateStatusFrom(ctx, bookingID, booking.Status, domain.StatusConfirmed); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			s.logger.Warn("ConfirmBooking: booking id=%d changed status concurrently", bookingID)
			return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		default:
			s.logger.Error("ConfirmBooking: failed to update booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: Confirm - update status: %v", ErrInternal, err)
		}
	}

	booking.Status = domain.StatusConfirmed

	s.logger.Info("ConfirmBooking: booking id=%d confirmed", bookingID)
	return models.FromDomainBooking(booking), nil
}

// GetByID получает бронирование с проверкой доступа:
// смотреть бронь может её владелец или администратор
func (s *Service) GetByID(ctx context.Context, bookingID int64, caller models.Caller) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, bookingID, "GetBooking")
	if err != nil {
		return nil, err
	}

	if !caller.CanAccessUser(booking.UserID) {
		s.logger.Warn("GetBooking: user=%d denied access to booking id=%d", caller.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// ListForUser получает бронирования пользователя с данными пространства,
// отсортированные по началу интервала (ASC). Доступно владельцу и
// администратору.
func (s *Service) ListForUser(ctx context.Context, userID int64, caller models.Caller) (*models.BookingListResponse, error) {
	if !caller.CanAccessUser(userID) {
		s.logger.Warn("ListForUser: user=%d denied access to bookings of user=%d", caller.UserID, userID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.GetByUserIDWithSpace(ctx, userID)
	if err != nil {
		s.logger.Error("ListForUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListForUser - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

func (s *Service) getBooking(ctx context.Context, bookingID int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: failed to get booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - booking lookup: %v", ErrInternal, op, err)
	}
	return booking, nil
}
