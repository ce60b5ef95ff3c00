package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// DefaultQueue очередь, которую читает почтовый воркер
const DefaultQueue = "salon.notifications"

// AMQPNotifier публикует письма в durable-очередь RabbitMQ.
// Соединение открывается на каждую отправку: писем мало, а долгоживущее соединение пришлось бы переподключать.
type AMQPNotifier struct {
	url   string
	queue string
	log   Logger
}

// NewAMQPNotifier создает драйвер amqp
func NewAMQPNotifier(url, queue string, log Logger) *AMQPNotifier {
	if queue == "" {
		queue = DefaultQueue
	}
	return &AMQPNotifier{url: url, queue: queue, log: log}
}

// Send публикует сообщение как persistent
func (n *AMQPNotifier) Send(ctx context.Context, kind domain.NotificationKind, to string, p Payload) error {
	msg, err := NewMessage(kind, to, p, time.Now())
	if err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: marshal message: %v", ErrInternal, err)
	}

	conn, err := amqp.Dial(n.url)
	if err != nil {
		n.log.Error("AMQPNotifier: dial failed: %v", err)
		return fmt.Errorf("%w: dial broker: %v", ErrDeliveryFailed, err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		n.log.Error("AMQPNotifier: channel open failed: %v", err)
		return fmt.Errorf("%w: open channel: %v", ErrDeliveryFailed, err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		n.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		n.log.Error("AMQPNotifier: queue declare failed: %v", err)
		return fmt.Errorf("%w: declare queue: %v", ErrDeliveryFailed, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Type:         msg.Kind,
		Timestamp:    msg.CreatedAt,
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", n.queue, false, false, pub); err != nil {
		n.log.Error("AMQPNotifier: publish failed: %v", err)
		return fmt.Errorf("%w: publish: %v", ErrDeliveryFailed, err)
	}

	n.log.Info("AMQPNotifier: queued %s id=%s to=%s", msg.Kind, msg.ID, msg.To)
	return nil
}
