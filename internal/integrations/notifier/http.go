package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// HTTPNotifier отправляет письма через почтовый шлюз (webhook)
type HTTPNotifier struct {
	url        string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewHTTPNotifier создает драйвер http
func NewHTTPNotifier(url, token string, timeout time.Duration, log Logger) *HTTPNotifier {
	return &HTTPNotifier{
		url:   url,
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет POST с JSON-сообщением
func (n *HTTPNotifier) Send(ctx context.Context, kind domain.NotificationKind, to string, p Payload) error {
	msg, err := NewMessage(kind, to, p, time.Now())
	if err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: marshal message: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", msg.ID)
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.log.Error("HTTPNotifier: request failed: %v", err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		n.log.Info("HTTPNotifier: sent %s id=%s to=%s", msg.Kind, msg.ID, msg.To)
		return nil
	default:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		n.log.Error("HTTPNotifier: relay answered %d: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrDeliveryFailed, resp.StatusCode, string(respBody))
	}
}
