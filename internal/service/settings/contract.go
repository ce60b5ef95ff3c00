package settings

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.ScheduleSettings, error)
	Upsert(ctx context.Context, s *domain.ScheduleSettings) (*domain.ScheduleSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
