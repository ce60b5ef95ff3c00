package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/settings/models"
)

// Service сервис настроек расписания.
// Пока администратор не сохранил настройки, действуют значения из конфигурационного файла.
type Service struct {
	repo     SettingsRepository
	defaults domain.ScheduleSettings
	logger   Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, defaults *domain.ScheduleSettings, logger Logger) *Service {
	if defaults == nil {
		defaults = domain.DefaultScheduleSettings()
	}
	return &Service{
		repo:     repo,
		defaults: *defaults,
		logger:   logger,
	}
}

// Current возвращает действующие настройки для расчета слотов
func (s *Service) Current(ctx context.Context) (*domain.ScheduleSettings, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			defaults := s.defaults
			return &defaults, nil
		}
		s.logger.Error("Settings: failed to load schedule settings: %v", err)
		return nil, fmt.Errorf("%w: load schedule settings: %w", domain.ErrDataUnavailable, err)
	}
	return current, nil
}

// Get возвращает настройки для админки
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(current), nil
}

// Update частично обновляет настройки
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	// 1. Пустой запрос не пишем
	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}

	// 2. Текущее состояние
	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Применяем изменения и валидируем результат целиком
	updated, err := req.Apply(*current)
	if err != nil {
		s.logger.Warn("UpdateSettings: invalid time: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := updated.Validate(); err != nil {
		s.logger.Warn("UpdateSettings: validation failed: %v", err)
		return nil, err
	}

	// 4. Сохраняем
	saved, err := s.repo.Upsert(ctx, updated)
	if err != nil {
		s.logger.Error("UpdateSettings: repository error: %v", err)
		return nil, fmt.Errorf("%w: save schedule settings: %w", domain.ErrPersistence, err)
	}

	s.logger.Info("UpdateSettings: hours %s-%s, interval=%d, cleanup=%d, buffers new=%d returning=%d",
		saved.OpenTime, saved.CloseTime, saved.SlotIntervalMinutes, saved.CleanupBufferMinutes,
		saved.NewCustomerBufferMinutes, saved.ReturningCustomerBufferMinutes)
	return models.FromDomainSettings(saved), nil
}
