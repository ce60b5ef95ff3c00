package notifier

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// LogNotifier пишет письма в лог вместо отправки (локальная разработка)
type LogNotifier struct {
	log Logger
}

// NewLogNotifier создает драйвер log
func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Send логирует сообщение
func (n *LogNotifier) Send(ctx context.Context, kind domain.NotificationKind, to string, p Payload) error {
	msg, err := NewMessage(kind, to, p, time.Now())
	if err != nil {
		return err
	}

	n.log.Info("Notification [%s] id=%s to=%s date=%s %s-%s subject=%q",
		msg.Kind, msg.ID, msg.To, msg.Date, msg.StartTime, msg.EndTime, msg.Subject)
	return nil
}
