package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FleetBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FleetBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями (админка)
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrStorageUnavailable, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с фильтрацией по периоду и статусу
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStorageUnavailable, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит бронирование в новый статус
// Допустимые переходы: pending -> confirmed -> in_progress -> completed, отмена из любого активного
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	next, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result *domain.Booking

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get booking: %v", ErrStorageUnavailable, err)
		}

		if !booking.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
		}

		// обновление проходит, только если статус не изменился после чтения
		if err := s.bookingRepo.UpdateStatus(txCtx, id, booking.Status, next); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				return fmt.Errorf("%w: booking id=%d changed status concurrently", ErrInvalidTransition, id)
			}
			return fmt.Errorf("%w: UpdateStatus - update: %v", ErrStorageUnavailable, err)
		}

		booking.Status = next
		result = booking
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrInvalidTransition):
			s.logger.Warn("UpdateStatus: booking id=%d: %v", id, err)
			return nil, err
		case errors.Is(err, ErrStorageUnavailable):
			s.logger.Error("UpdateStatus: booking id=%d: %v", id, err)
			return nil, err
		default:
			s.logger.Error("UpdateStatus: transaction failed for booking id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - transaction: %v", ErrStorageUnavailable, err)
		}
	}

	s.logger.Info("UpdateStatus: booking id=%d is now %s", id, next)
	return models.FromDomainBooking(result), nil
}
