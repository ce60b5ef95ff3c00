package stream_bookings

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

const (
	msgStreamingUnsupported = "потоковая передача не поддерживается"
	msgSubscribeFailed      = "не удалось подписаться на обновления"

	// DefaultHeartbeat держит соединение открытым за прокси
	DefaultHeartbeat = 25 * time.Second
)

type Handler struct {
	subscriber Subscriber
	heartbeat  time.Duration
	logger     Logger
}

func NewHandler(subscriber Subscriber, heartbeat time.Duration, logger Logger) *Handler {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return &Handler{
		subscriber: subscriber,
		heartbeat:  heartbeat,
		logger:     logger,
	}
}

// Handle GET /api/v1/admin/bookings/stream
// Server-Sent Events: каждое событие приходит как "event: <type>" + "data: <json>".
// Поток односторонний, пропущенные события админка восполняет перечитыванием списка.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("GET /admin/bookings/stream - ResponseWriter does not support flushing")
		handlers.RespondError(w, http.StatusInternalServerError, msgStreamingUnsupported)
		return
	}

	ctx := r.Context()
	ch, err := h.subscriber.Subscribe(ctx)
	if err != nil {
		h.logger.Error("GET /admin/bookings/stream - Subscribe failed: %v", err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgSubscribeFailed)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	h.logger.Info("GET /admin/bookings/stream - Client subscribed")

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("GET /admin/bookings/stream - Client disconnected")
			return

		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()

		case ev, ok := <-ch:
			if !ok {
				h.logger.Warn("GET /admin/bookings/stream - Subscription closed")
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error("GET /admin/bookings/stream - Failed to encode event: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
			flusher.Flush()
		}
	}
}
