package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/service/customers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/menus"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CustomerResolver находит или создает клиента
type CustomerResolver interface {
	Resolve(ctx context.Context, name, email, phone string) (*customers.Resolution, error)
}

// MenuResolver выбранные услуги
type MenuResolver interface {
	Resolve(ctx context.Context, ids []int64) (*menus.Selection, error)
}

// SettingsProvider действующие настройки расписания
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.ScheduleSettings, error)
}

// AvailabilityChecker повторная проверка слота внутри транзакции
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, hours domain.BusinessHours, q availability.SlotQuery) (bool, error)
}

// Notifier отправляет письмо клиенту
type Notifier interface {
	Send(ctx context.Context, kind domain.NotificationKind, to string, p notifier.Payload) error
}

// EventPublisher рассылает живые обновления админке
type EventPublisher interface {
	Publish(ctx context.Context, ev events.Event)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// NotificationRecorder учет отправленных писем
type NotificationRecorder interface {
	RecordNotification(kind string, sent bool)
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
