package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	menus        MenuResolver
	settings     SettingsProvider
	calculator   SlotCalculator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	menus MenuResolver,
	settings SettingsProvider,
	calculator SlotCalculator,
	logger Logger,
) *UseCase {
	return &UseCase{
		menus:        menus,
		settings:     settings,
		calculator:   calculator,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, menus=%v, newCustomer=%t, public=%t",
		req.Date.Format(domain.DateFormat), req.MenuIDs, req.IsNewCustomer, req.Public)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// 2. Длительность услуг
	selection, err := uc.menus.Resolve(ctx, req.MenuIDs)
	if err != nil {
		return nil, err
	}

	// 3. Настройки расписания
	settings, err := uc.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()
	buffer := settings.BufferFor(req.IsNewCustomer)
	resp := &Response{
		Date:            req.Date,
		DurationMinutes: selection.DurationMinutes,
		BufferMinutes:   buffer,
		Slots:           []types.TimeString{},
	}

	// 4. Для сайта недоступная дата выглядит как полностью занятый день
	if req.Public {
		if err := settings.CheckBookingDate(req.Date, now); err != nil {
			uc.logger.Info("GetAvailableSlots: date %s is not bookable: %v", req.Date.Format(domain.DateFormat), err)
			return resp, nil
		}
	}

	// 5. Расчет
	slots, err := uc.calculator.AvailableSlots(ctx, settings.BusinessHours(), req.Date, selection.DurationMinutes, buffer)
	if err != nil {
		return nil, err
	}

	// 6. Сегодня не предлагаем уже прошедшее время
	if domain.IsToday(req.Date, now) {
		slots = dropPast(slots, now.Hour()*60+now.Minute())
	}

	resp.Slots = slots
	uc.logger.Info("GetAvailableSlots: %d slots for %s", len(slots), req.Date.Format(domain.DateFormat))
	return resp, nil
}

// dropPast оставляет слоты, начинающиеся строго позже nowMinutes
func dropPast(slots []types.TimeString, nowMinutes int) []types.TimeString {
	result := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		if s.Minutes() > nowMinutes {
			result = append(result, s)
		}
	}
	return result
}
