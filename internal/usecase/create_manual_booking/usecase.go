package create_manual_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	customerRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/customer"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

// UseCase use case для бронирования, которое администратор вносит вручную
type UseCase struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	menus        MenuResolver
	settings     SettingsProvider
	checker      AvailabilityChecker
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	menus MenuResolver,
	settings SettingsProvider,
	checker AvailabilityChecker,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		menus:        menus,
		settings:     settings,
		checker:      checker,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создает сразу подтвержденное бронирование.
// Сетка слотов и горизонт бронирования не применяются, прошедшие даты запрещены.
// Письмо клиенту не отправляется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateManualBooking: customer=%d, menu=%d, date=%s, time=%s",
		req.CustomerID, req.MenuID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateManualBooking: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	// 2. Настройки и дата
	settings, err := uc.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	if err := settings.CheckBookingDate(req.Date, uc.timeProvider.Now()); errors.Is(err, domain.ErrDateInPast) {
		uc.logger.Warn("CreateManualBooking: %v", err)
		return nil, err
	}

	// 3. Клиент
	customer, err := uc.customerRepo.GetByID(ctx, req.CustomerID)
	if errors.Is(err, customerRepo.ErrCustomerNotFound) {
		uc.logger.Warn("CreateManualBooking: customer id=%d not found", req.CustomerID)
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		uc.logger.Error("CreateManualBooking: failed to load customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: get customer: %v", domain.ErrDataUnavailable, err)
	}

	// 4. Услуги и время окончания
	selection, err := uc.menus.Resolve(ctx, menuIDs(req))
	if err != nil {
		uc.logger.Warn("CreateManualBooking: menu selection rejected: %v", err)
		return nil, err
	}
	endTime, err := domain.DeriveEndTime(req.StartTime, selection.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: end time: %v", domain.ErrValidation, err)
	}

	var (
		result *domain.Booking
		isNew  bool
	)

	// 5. Класс клиента, проверка слота и запись в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		count, err := uc.bookingRepo.CountByCustomer(txCtx, customer.ID)
		if err != nil {
			return fmt.Errorf("%w: count bookings: %v", domain.ErrDataUnavailable, err)
		}
		isNew = count == 0

		available, err := uc.checker.IsAvailable(txCtx, settings.BusinessHours(), availability.SlotQuery{
			Date:            req.Date,
			Start:           req.StartTime,
			DurationMinutes: selection.DurationMinutes,
			BufferMinutes:   settings.BufferFor(isNew),
		})
		if err != nil {
			return err
		}
		if !available {
			return fmt.Errorf("%w: %s %s", domain.ErrSlotNoLongerAvailable, req.Date.Format(domain.DateFormat), req.StartTime)
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			CustomerID:    ptr.Ptr(customer.ID),
			MenuID:        ptr.Ptr(selection.Main().ID),
			CustomerName:  customer.Name,
			CustomerEmail: customer.Email,
			CustomerPhone: customer.Phone,
			MenuName:      selection.Name,
			MenuPrice:     selection.Price,
			BookingDate:   req.Date,
			StartTime:     req.StartTime,
			EndTime:       endTime,
			Status:        domain.StatusConfirmed,
			NewCustomer:   isNew,
			StaffNotes:    req.StaffNotes,
		})
		if err != nil {
			return fmt.Errorf("%w: create booking: %w", domain.ErrPersistence, err)
		}
		result = created
		return nil
	})
	if err != nil {
		uc.logger.Warn("CreateManualBooking: rejected %s %s: %v", req.Date.Format(domain.DateFormat), req.StartTime, err)
		return nil, err
	}

	uc.logger.Info("CreateManualBooking: created booking id=%d for customer id=%d (newCustomer=%t)",
		result.ID, customer.ID, isNew)

	uc.publisher.Publish(ctx, events.Event{
		Type:      events.TypeBookingCreated,
		BookingID: result.ID,
		Status:    string(result.Status),
		Date:      result.BookingDate.Format(domain.DateFormat),
	})

	return &Response{Booking: result, IsNewCustomer: isNew}, nil
}
