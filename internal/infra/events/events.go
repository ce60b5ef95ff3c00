package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel канал живых обновлений расписания
const DefaultChannel = "salon:bookings"

// Типы событий
const (
	TypeBookingCreated = "booking.created"
	TypeBookingUpdated = "booking.updated"
	TypeBlockChanged   = "block.changed"
)

// Event сообщение об изменении расписания, которое получают открытые админки
type Event struct {
	Type      string    `json:"type"`
	BookingID int64     `json:"bookingId,omitempty"`
	Status    string    `json:"status,omitempty"`
	Date      string    `json:"date"`
	At        time.Time `json:"at"`
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RedisBus публикует и читает события через Redis Pub/Sub
type RedisBus struct {
	client  *redis.Client
	channel string
	log     Logger
}

// NewRedisClient создает клиент Redis
func NewRedisClient(addr, password string, db, poolSize int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: poolSize,
	})
}

// NewRedisBus создает шину событий
func NewRedisBus(client *redis.Client, channel string, log Logger) *RedisBus {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisBus{client: client, channel: channel, log: log}
}

// Publish отправляет событие. Ошибка только логируется: живые обновления не влияют на результат операции.
func (b *RedisBus) Publish(ctx context.Context, ev Event) {
	if b.client == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		b.log.Error("Events: failed to marshal %s: %v", ev.Type, err)
		return
	}
	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		b.log.Warn("Events: failed to publish %s for booking=%d: %v", ev.Type, ev.BookingID, err)
	}
}

// Subscribe возвращает канал событий до отмены ctx
func (b *RedisBus) Subscribe(ctx context.Context) (<-chan Event, error) {
	if b.client == nil {
		return nil, fmt.Errorf("events: redis client is nil")
	}

	sub := b.client.Subscribe(ctx, b.channel)
	// Ждем подтверждения подписки, иначе первые события могут потеряться
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("events: subscribe: %w", err)
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					b.log.Warn("Events: skip malformed message: %v", err)
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// NopBus используется, когда Redis не настроен
type NopBus struct{}

// Publish ничего не делает
func (NopBus) Publish(context.Context, Event) {}

// Subscribe возвращает канал, закрывающийся вместе с ctx
func (NopBus) Subscribe(ctx context.Context) (<-chan Event, error) {
	out := make(chan Event)
	go func() {
		<-ctx.Done()
		close(out)
	}()
	return out, nil
}
