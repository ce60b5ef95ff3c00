package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/customer"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// Service сервис чтения бронирований для админки
type Service struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		logger:       logger,
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
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", domain.ErrDataUnavailable, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с фильтрацией по периоду и статусу.
// Для одной даты сортировка по времени начала, для периода сначала новые.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	// Логируем запрос с деталями фильтрации
	parts := []string{"List: fetching bookings"}
	if req.From != nil {
		parts = append(parts, "from="+*req.From)
	}
	if req.To != nil {
		parts = append(parts, "to="+*req.To)
	}
	if req.Status != nil {
		parts = append(parts, "status="+*req.Status)
	}
	if req.IncludeInactive {
		parts = append(parts, "includeInactive=true")
	}
	s.logger.Info(strings.Join(parts, ", "))

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %w: %v", domain.ErrValidation, ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", domain.ErrDataUnavailable, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetCustomerBookings история бронирований клиента, включая отмененные
func (s *Service) GetCustomerBookings(ctx context.Context, customerID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d", customerID)

	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("GetCustomerBookings: customer id=%d not found", customerID)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetCustomerBookings: failed to get customer id=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: get customer: %v", domain.ErrDataUnavailable, err)
	}

	bookings, err := s.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{
		CustomerID:      &customerID,
		IncludeInactive: true,
	})
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", domain.ErrDataUnavailable, err)
	}

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings for customer=%d", len(bookings), customerID)
	return models.FromDomainBookingList(bookings), nil
}
