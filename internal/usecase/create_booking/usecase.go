package create_booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/service/drafts"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

// UseCase use case для заявки на бронирование с сайта
type UseCase struct {
	bookingRepo  BookingRepository
	customers    CustomerResolver
	menus        MenuResolver
	settings     SettingsProvider
	checker      AvailabilityChecker
	notifier     Notifier
	publisher    EventPublisher
	txManager    TransactionManager
	recorder     NotificationRecorder
	timeProvider TimeProvider
	shop         drafts.Shop
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	customers CustomerResolver,
	menus MenuResolver,
	settings SettingsProvider,
	checker AvailabilityChecker,
	notifier Notifier,
	publisher EventPublisher,
	txManager TransactionManager,
	recorder NotificationRecorder,
	shop drafts.Shop,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		customers:    customers,
		menus:        menus,
		settings:     settings,
		checker:      checker,
		notifier:     notifier,
		publisher:    publisher,
		txManager:    txManager,
		recorder:     recorder,
		timeProvider: &RealTimeProvider{},
		shop:         shop,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Клиент, проверка доступности и запись выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: menu=%d, addOns=%v, date=%s, time=%s",
		req.MenuID, req.AddOnIDs, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Настройки расписания
	settings, err := uc.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	hours := settings.BusinessHours()

	// 4. Дата и время
	if err := settings.CheckBookingDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateGrid(req.StartTime, hours); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if domain.IsToday(req.Date, now) && req.StartTime.Minutes() <= now.Hour()*60+now.Minute() {
		uc.logger.Warn("CreateBooking: start %s has already passed", req.StartTime)
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, ErrTooLateToBook)
	}

	// 5. Услуги и время окончания (начало + сумма длительностей)
	selection, err := uc.menus.Resolve(ctx, menuIDs(req))
	if err != nil {
		uc.logger.Warn("CreateBooking: menu selection rejected: %v", err)
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

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Клиент: откат транзакции удаляет и только что созданного клиента
		resolution, err := uc.customers.Resolve(txCtx, req.Name, req.Email, req.Phone)
		if err != nil {
			return err
		}
		isNew = resolution.IsNew

		// 6.2. Проверяем слот с буфером класса клиента
		available, err := uc.checker.IsAvailable(txCtx, hours, availability.SlotQuery{
			Date:            req.Date,
			Start:           req.StartTime,
			DurationMinutes: selection.DurationMinutes,
			BufferMinutes:   settings.BufferFor(resolution.IsNew),
		})
		if err != nil {
			return err
		}
		if !available {
			return fmt.Errorf("%w: %s %s", domain.ErrSlotNoLongerAvailable, req.Date.Format(domain.DateFormat), req.StartTime)
		}

		// 6.3. Создаем бронирование с денормализацией данных
		main := selection.Main()
		booking := &domain.Booking{
			CustomerID:    ptr.Ptr(resolution.CustomerID),
			MenuID:        ptr.Ptr(main.ID),
			CustomerName:  strings.TrimSpace(req.Name),
			CustomerEmail: strings.TrimSpace(req.Email),
			CustomerPhone: strings.TrimSpace(req.Phone),
			MenuName:      selection.Name,
			MenuPrice:     selection.Price,
			BookingDate:   req.Date,
			StartTime:     req.StartTime,
			EndTime:       endTime,
			Status:        domain.StatusPending,
			NewCustomer:   resolution.IsNew,
			Notes:         req.Notes,
			PhotoURLs:     req.PhotoURLs,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: create booking: %w", domain.ErrPersistence, err)
		}

		result = created
		return nil
	})

	if err != nil {
		uc.logger.Warn("CreateBooking: rejected %s %s: %v", req.Date.Format(domain.DateFormat), req.StartTime, err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d (%s-%s, newCustomer=%t)",
		result.ID, result.StartTime, result.EndTime, isNew)

	resp := &Response{Booking: result, IsNewCustomer: isNew}

	// 7. Подтверждение получения заявки уходит без проверки администратором
	resp.NotificationSent = uc.sendReceived(ctx, result)

	// 8. Живое обновление
	uc.publisher.Publish(ctx, events.Event{
		Type:      events.TypeBookingCreated,
		BookingID: result.ID,
		Status:    string(result.Status),
		Date:      result.BookingDate.Format(domain.DateFormat),
	})

	return resp, nil
}

func (uc *UseCase) sendReceived(ctx context.Context, b *domain.Booking) bool {
	if !b.HasRecipient() {
		return false
	}

	kind := domain.NotificationBookingReceived
	draft := drafts.Compose(kind, b, nil, uc.shop)
	err := uc.notifier.Send(ctx, kind, b.CustomerEmail, notifier.Payload{
		CustomerName: b.CustomerName,
		Date:         b.BookingDate,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		MenuName:     b.MenuName,
		MenuPrice:    b.MenuPrice,
		Subject:      draft.Subject,
		Body:         draft.Body,
	})
	uc.recorder.RecordNotification(string(kind), err == nil)
	if err != nil {
		uc.logger.Error("CreateBooking: booking id=%d stored but %s notification failed: %v", b.ID, kind, err)
		return false
	}
	return true
}
