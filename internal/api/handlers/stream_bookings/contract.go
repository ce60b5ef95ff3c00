package stream_bookings

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
)

// Subscriber источник живых обновлений
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan events.Event, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
