package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository источник бронирований, занимающих время (pending и confirmed)
type BookingRepository interface {
	GetOccupyingByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// AdminBlockRepository источник административных блокировок
type AdminBlockRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.AdminBlock, error)
}

// CheckRecorder учитывает результаты повторных проверок слота
type CheckRecorder interface {
	RecordAvailabilityCheck(available bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
