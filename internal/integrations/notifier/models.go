package notifier

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Payload данные бронирования для письма.
// Subject и Body уже одобрены администратором (или сформированы автоматически для booking_received).
type Payload struct {
	CustomerName string
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	MenuName     string
	MenuPrice    float64
	Alternatives domain.Alternatives
	Subject      string
	Body         string
}

// Message сообщение, которое уходит в очередь или почтовый шлюз
type Message struct {
	ID           string              `json:"id"`
	Kind         string              `json:"kind"`
	To           string              `json:"to"`
	Subject      string              `json:"subject"`
	Body         string              `json:"body"`
	CustomerName string              `json:"customerName"`
	Date         string              `json:"date"`
	StartTime    string              `json:"startTime"`
	EndTime      string              `json:"endTime"`
	MenuName     string              `json:"menuName"`
	MenuPrice    float64             `json:"menuPrice"`
	Alternatives domain.Alternatives `json:"alternatives,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// NewMessage собирает сообщение с уникальным ID
func NewMessage(kind domain.NotificationKind, to string, p Payload, now time.Time) (*Message, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return nil, ErrNoRecipient
	}

	alternatives := p.Alternatives
	if len(alternatives) > domain.MaxAlternatives {
		alternatives = alternatives[:domain.MaxAlternatives]
	}

	return &Message{
		ID:           uuid.NewString(),
		Kind:         string(kind),
		To:           to,
		Subject:      p.Subject,
		Body:         p.Body,
		CustomerName: p.CustomerName,
		Date:         p.Date.Format(domain.DateFormat),
		StartTime:    p.StartTime.String(),
		EndTime:      p.EndTime.String(),
		MenuName:     p.MenuName,
		MenuPrice:    p.MenuPrice,
		Alternatives: alternatives,
		CreatedAt:    now.UTC(),
	}, nil
}
