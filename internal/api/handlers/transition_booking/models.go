package transition_booking

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lifecycle"
)

// NotificationApproval черновик письма после проверки администратором
type NotificationApproval struct {
	Approved bool   `json:"approved"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

// TransitionRequest тело PATCH-запросов смены статуса
type TransitionRequest struct {
	Alternatives     domain.Alternatives   `json:"alternatives,omitempty"`     // reject
	AlternativeIndex int                   `json:"alternativeIndex,omitempty"` // accept-alternative
	Notification     *NotificationApproval `json:"notification,omitempty"`
}

// PreviewRequest тело запроса черновика письма
type PreviewRequest struct {
	Action           string              `json:"action"`
	Alternatives     domain.Alternatives `json:"alternatives,omitempty"`
	AlternativeIndex int                 `json:"alternativeIndex,omitempty"`
}

// TransitionResponse результат перехода
type TransitionResponse struct {
	Booking           *models.BookingResponse `json:"booking"`
	From              string                  `json:"from"`
	To                string                  `json:"to"`
	Notification      string                  `json:"notification,omitempty"`
	NotificationSent  bool                    `json:"notificationSent"`
	NotificationError string                  `json:"notificationError,omitempty"`
}

// PreviewResponse черновик письма
type PreviewResponse struct {
	Kind         string `json:"kind"`
	To           string `json:"to,omitempty"`
	HasRecipient bool   `json:"hasRecipient"`
	Subject      string `json:"subject,omitempty"`
	Body         string `json:"body,omitempty"`
}

func (r *TransitionRequest) approval() *lifecycle.Approval {
	if r.Notification == nil {
		return nil
	}
	return &lifecycle.Approval{
		Approved: r.Notification.Approved,
		Subject:  r.Notification.Subject,
		Body:     r.Notification.Body,
	}
}

// FromResult конвертирует результат перехода в HTTP response
func FromResult(res *lifecycle.Result) *TransitionResponse {
	return &TransitionResponse{
		Booking:           models.FromDomainBooking(res.Booking),
		From:              string(res.Transition.From),
		To:                string(res.Transition.To),
		Notification:      string(res.Transition.Notification),
		NotificationSent:  res.NotificationSent,
		NotificationError: res.NotificationError,
	}
}

// FromPreview конвертирует черновик в HTTP response
func FromPreview(p *lifecycle.Preview) *PreviewResponse {
	return &PreviewResponse{
		Kind:         string(p.Kind),
		To:           p.To,
		HasRecipient: p.HasRecipient,
		Subject:      p.Subject,
		Body:         p.Body,
	}
}
