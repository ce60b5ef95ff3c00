package blocks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
)

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.AdminBlock, error)
	Create(ctx context.Context, b *domain.AdminBlock) (*domain.AdminBlock, error)
	// Delete возвращает дату удаленной блокировки
	Delete(ctx context.Context, id int64) (time.Time, error)
}

// EventPublisher рассылает живые обновления админке
type EventPublisher interface {
	Publish(ctx context.Context, ev events.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
