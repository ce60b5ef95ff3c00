package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Драйверы уведомлений
const (
	DriverLog  = "log"
	DriverAMQP = "amqp"
	DriverHTTP = "http"
)

// Notifier отправляет одно письмо клиенту
type Notifier interface {
	Send(ctx context.Context, kind domain.NotificationKind, to string, p Payload) error
}

// Options параметры драйвера из конфигурации
type Options struct {
	Driver   string
	AMQPURL  string
	Queue    string
	RelayURL string
	Token    string
	Timeout  time.Duration
}

// New создает драйвер по имени
func New(opts Options, log Logger) (Notifier, error) {
	switch opts.Driver {
	case DriverLog, "":
		return NewLogNotifier(log), nil
	case DriverAMQP:
		return NewAMQPNotifier(opts.AMQPURL, opts.Queue, log), nil
	case DriverHTTP:
		return NewHTTPNotifier(opts.RelayURL, opts.Token, opts.Timeout, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
