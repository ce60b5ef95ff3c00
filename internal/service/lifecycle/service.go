package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/service/drafts"
)

// Service жизненный цикл бронирования: подтверждение, отказ с альтернативами, отмена, перенос, завершение
type Service struct {
	bookingRepo  BookingRepository
	checker      AvailabilityChecker
	settings     SettingsProvider
	notifier     Notifier
	publisher    EventPublisher
	txManager    TransactionManager
	metrics      MetricsRecorder
	timeProvider TimeProvider
	shop         drafts.Shop
	logger       Logger
}

// NewService создает новый экземпляр сервиса жизненного цикла
func NewService(
	bookingRepo BookingRepository,
	checker AvailabilityChecker,
	settings SettingsProvider,
	notifier Notifier,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics MetricsRecorder,
	shop drafts.Shop,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		checker:      checker,
		settings:     settings,
		notifier:     notifier,
		publisher:    publisher,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		shop:         shop,
		logger:       logger,
	}
}

// Confirm pending -> confirmed
func (s *Service) Confirm(ctx context.Context, bookingID int64, approval *Approval) (*Result, error) {
	return s.Apply(ctx, &Command{BookingID: bookingID, Action: domain.ActionConfirm, Approval: approval})
}

// RejectWithAlternatives отказ: с 1..3 альтернативами -> resuggesting, без них -> cancelled
func (s *Service) RejectWithAlternatives(
	ctx context.Context,
	bookingID int64,
	alternatives domain.Alternatives,
	approval *Approval,
) (*Result, error) {
	return s.Apply(ctx, &Command{
		BookingID:    bookingID,
		Action:       domain.ActionReject,
		Alternatives: alternatives,
		Approval:     approval,
	})
}

// Cancel pending/confirmed/resuggesting -> cancelled
func (s *Service) Cancel(ctx context.Context, bookingID int64, approval *Approval) (*Result, error) {
	return s.Apply(ctx, &Command{BookingID: bookingID, Action: domain.ActionCancel, Approval: approval})
}

// AcceptAlternative resuggesting -> confirmed с переносом на выбранную альтернативу
func (s *Service) AcceptAlternative(ctx context.Context, bookingID int64, index int, approval *Approval) (*Result, error) {
	return s.Apply(ctx, &Command{
		BookingID:        bookingID,
		Action:           domain.ActionAcceptAlternative,
		AlternativeIndex: index,
		Approval:         approval,
	})
}

// Complete -> completed, без письма
func (s *Service) Complete(ctx context.Context, bookingID int64) (*Result, error) {
	return s.Apply(ctx, &Command{BookingID: bookingID, Action: domain.ActionComplete})
}

// Apply выполняет переход: проверка одобрения -> транзакция (чтение, повторная проверка, условный UPDATE)
// -> ровно одно письмо -> событие живого обновления.
func (s *Service) Apply(ctx context.Context, cmd *Command) (*Result, error) {
	s.logger.Info("Lifecycle: booking=%d, action=%s, alternatives=%d", cmd.BookingID, cmd.Action, len(cmd.Alternatives))

	// 1. Проверки без обращения к хранилищу
	if err := s.validateCommand(cmd); err != nil {
		s.logger.Warn("Lifecycle: booking=%d, action=%s rejected: %v", cmd.BookingID, cmd.Action, err)
		return nil, err
	}

	var (
		updated    *domain.Booking
		transition domain.Transition
	)

	// 2. Сериализуемая транзакция
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем бронирование с блокировкой строки
		current, err := s.bookingRepo.GetByID(txCtx, cmd.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: read booking: %w", domain.ErrPersistence, err)
		}

		// 2.2. Переход по таблице
		transition, err = domain.NextTransition(current.Status, cmd.Action, len(cmd.Alternatives))
		if err != nil {
			return err
		}

		// 2.3. Повторная проверка времени и изменения строки
		update, err := s.prepareUpdate(txCtx, cmd, current, transition)
		if err != nil {
			return err
		}

		// 2.4. Условный UPDATE по ожидаемому статусу
		updated, err = s.bookingRepo.UpdateStatus(txCtx, current.ID, current.Status, *update)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrStatusConflict):
				return ErrStatusChanged
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			default:
				return fmt.Errorf("%w: update status: %w", domain.ErrPersistence, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logTxError(cmd, err)
		return nil, err
	}

	s.metrics.RecordTransition(string(transition.From), string(transition.To))
	s.logger.Info("Lifecycle: booking=%d %s -> %s", updated.ID, transition.From, transition.To)

	result := &Result{Booking: updated, Transition: transition}

	// 3. Письмо уходит только после фиксации, его ошибка переход не откатывает
	if transition.RequiresNotification() {
		s.notify(ctx, result, cmd)
	}

	// 4. Живое обновление
	s.publisher.Publish(ctx, events.Event{
		Type:      events.TypeBookingUpdated,
		BookingID: updated.ID,
		Status:    string(updated.Status),
		Date:      updated.BookingDate.Format(domain.DateFormat),
	})

	return result, nil
}

// Preview возвращает черновик письма для действия без изменения бронирования
func (s *Service) Preview(ctx context.Context, req *PreviewRequest) (*Preview, error) {
	if err := validateAlternatives(req.Alternatives, s.today()); err != nil {
		return nil, err
	}

	current, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Preview: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: read booking: %w", domain.ErrDataUnavailable, err)
	}

	transition, err := domain.NextTransition(current.Status, req.Action, len(req.Alternatives))
	if err != nil {
		return nil, err
	}

	preview := &Preview{
		Kind:         transition.Notification,
		To:           current.CustomerEmail,
		HasRecipient: current.HasRecipient(),
	}
	if !transition.RequiresNotification() {
		return preview, nil
	}

	// Для переноса письмо описывает новое время
	target := current
	if req.Action == domain.ActionAcceptAlternative {
		target, err = movedBooking(current, req.AlternativeIndex)
		if err != nil {
			return nil, err
		}
	}

	draft := drafts.Compose(transition.Notification, target, req.Alternatives, s.shop)
	preview.Subject = draft.Subject
	preview.Body = draft.Body
	return preview, nil
}

func (s *Service) validateCommand(cmd *Command) error {
	if cmd.BookingID <= 0 {
		return fmt.Errorf("%w: booking id must be positive", domain.ErrValidation)
	}

	if domain.ActionNotifies(cmd.Action) {
		a := cmd.Approval
		if a == nil || !a.Approved || strings.TrimSpace(a.Subject) == "" || strings.TrimSpace(a.Body) == "" {
			return fmt.Errorf("%w: %w", domain.ErrValidation, ErrNotificationNotApproved)
		}
	}

	if cmd.Action == domain.ActionAcceptAlternative && cmd.AlternativeIndex < 0 {
		return fmt.Errorf("%w: %w", domain.ErrValidation, ErrNoSuchAlternative)
	}

	return validateAlternatives(cmd.Alternatives, s.today())
}

func (s *Service) prepareUpdate(
	ctx context.Context,
	cmd *Command,
	current *domain.Booking,
	transition domain.Transition,
) (*bookingRepo.StatusUpdate, error) {
	update := &bookingRepo.StatusUpdate{Status: transition.To}

	switch {
	case transition.To == domain.StatusResuggesting:
		// Предлагаемое время должно быть свободно на момент предложения
		for i, alt := range cmd.Alternatives {
			if err := s.ensureAvailable(ctx, current, alt); err != nil {
				return nil, fmt.Errorf("alternative %d: %w", i+1, err)
			}
		}
		alternatives := cmd.Alternatives
		update.Alternatives = &alternatives

	case transition.Revalidate:
		moved, err := movedBooking(current, cmd.AlternativeIndex)
		if err != nil {
			return nil, err
		}
		alt := current.Alternatives[cmd.AlternativeIndex]
		if s.alreadyPassed(alt) {
			return nil, fmt.Errorf("%w: alternative %s %s has already passed",
				domain.ErrSlotNoLongerAvailable, alt.Date.Format(domain.DateFormat), alt.StartTime)
		}
		if err := s.ensureAvailable(ctx, current, alt); err != nil {
			return nil, err
		}
		update.BookingDate = &moved.BookingDate
		update.StartTime = &moved.StartTime
		update.EndTime = &moved.EndTime
	}

	return update, nil
}

func (s *Service) ensureAvailable(ctx context.Context, current *domain.Booking, alt domain.Alternative) error {
	settings, err := s.settings.Current(ctx)
	if err != nil {
		return err
	}

	available, err := s.checker.IsAvailable(ctx, settings.BusinessHours(), availability.SlotQuery{
		Date:             alt.Date,
		Start:            alt.StartTime,
		DurationMinutes:  current.DurationMinutes(),
		BufferMinutes:    settings.BufferFor(current.NewCustomer),
		ExcludeBookingID: &current.ID,
	})
	if err != nil {
		return err
	}
	if !available {
		return fmt.Errorf("%w: %s %s", domain.ErrSlotNoLongerAvailable, alt.Date.Format(domain.DateFormat), alt.StartTime)
	}
	return nil
}

func (s *Service) notify(ctx context.Context, result *Result, cmd *Command) {
	b := result.Booking
	kind := result.Transition.Notification

	if !b.HasRecipient() {
		result.NotificationError = notifier.ErrNoRecipient.Error()
		s.metrics.RecordNotification(string(kind), false)
		s.logger.Warn("Lifecycle: booking=%d has no email, %s notification skipped", b.ID, kind)
		return
	}

	payload := notifier.Payload{
		CustomerName: b.CustomerName,
		Date:         b.BookingDate,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		MenuName:     b.MenuName,
		MenuPrice:    b.MenuPrice,
		Alternatives: cmd.Alternatives,
		Subject:      cmd.Approval.Subject,
		Body:         cmd.Approval.Body,
	}

	if err := s.notifier.Send(ctx, kind, b.CustomerEmail, payload); err != nil {
		result.NotificationError = err.Error()
		s.metrics.RecordNotification(string(kind), false)
		s.logger.Error("Lifecycle: booking=%d is %s but %s notification failed: %v", b.ID, b.Status, kind, err)
		return
	}

	result.NotificationSent = true
	s.metrics.RecordNotification(string(kind), true)
}

func (s *Service) logTxError(cmd *Command, err error) {
	switch {
	case errors.Is(err, domain.ErrPersistence), errors.Is(err, domain.ErrDataUnavailable):
		s.logger.Error("Lifecycle: booking=%d, action=%s failed: %v", cmd.BookingID, cmd.Action, err)
	default:
		s.logger.Warn("Lifecycle: booking=%d, action=%s refused: %v", cmd.BookingID, cmd.Action, err)
	}
}

// alreadyPassed альтернатива в прошлом или сегодня с уже наступившим началом
func (s *Service) alreadyPassed(alt domain.Alternative) bool {
	now := s.timeProvider.Now()
	if alt.Date.Before(s.today()) {
		return true
	}
	return domain.IsToday(alt.Date, now) && alt.StartTime.Minutes() <= now.Hour()*60+now.Minute()
}

func (s *Service) today() time.Time {
	now := s.timeProvider.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// movedBooking копия бронирования, перенесенная на альтернативу с сохранением длительности
func movedBooking(current *domain.Booking, index int) (*domain.Booking, error) {
	if index < 0 || index >= len(current.Alternatives) {
		return nil, fmt.Errorf("%w: %w: %d of %d", domain.ErrValidation, ErrNoSuchAlternative, index, len(current.Alternatives))
	}
	alt := current.Alternatives[index]

	end, err := domain.DeriveEndTime(alt.StartTime, current.DurationMinutes())
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %v", domain.ErrValidation, ErrInvalidAlternative, err)
	}

	moved := *current
	moved.BookingDate = alt.Date
	moved.StartTime = alt.StartTime
	moved.EndTime = end
	return &moved, nil
}

func validateAlternatives(alternatives domain.Alternatives, today time.Time) error {
	if len(alternatives) > domain.MaxAlternatives {
		return fmt.Errorf("%w: at most %d alternatives allowed, got %d",
			domain.ErrValidation, domain.MaxAlternatives, len(alternatives))
	}

	seen := make(map[string]struct{}, len(alternatives))
	for i, alt := range alternatives {
		if err := alt.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: %w: alternative %d: %v", domain.ErrValidation, ErrInvalidAlternative, i+1, err)
		}
		if alt.Date.Before(today) {
			return fmt.Errorf("%w: %w: alternative %d is in the past", domain.ErrValidation, ErrInvalidAlternative, i+1)
		}
		key := alt.Date.Format(domain.DateFormat) + " " + alt.StartTime.String()
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %w: duplicate %s", domain.ErrValidation, ErrInvalidAlternative, key)
		}
		seen[key] = struct{}{}
	}
	return nil
}
