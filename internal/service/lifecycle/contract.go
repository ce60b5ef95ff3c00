package lifecycle

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, expected domain.BookingStatus, update bookingRepo.StatusUpdate) (*domain.Booking, error)
}

// AvailabilityChecker повторная проверка слота внутри транзакции
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, hours domain.BusinessHours, q availability.SlotQuery) (bool, error)
}

// SettingsProvider действующие настройки расписания
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.ScheduleSettings, error)
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

// MetricsRecorder учет переходов и уведомлений
type MetricsRecorder interface {
	RecordTransition(from, to string)
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
