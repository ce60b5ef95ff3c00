package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/menus"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// MenuResolver суммарная длительность выбранных услуг
type MenuResolver interface {
	Resolve(ctx context.Context, ids []int64) (*menus.Selection, error)
}

// SettingsProvider действующие настройки расписания
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.ScheduleSettings, error)
}

// SlotCalculator калькулятор доступности
type SlotCalculator interface {
	AvailableSlots(
		ctx context.Context,
		hours domain.BusinessHours,
		date time.Time,
		durationMinutes int,
		bufferMinutes int,
	) ([]types.TimeString, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
