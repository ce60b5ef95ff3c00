package transition_booking

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lifecycle"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgNotApproved        = "письмо клиенту должно быть просмотрено и одобрено"
	msgStatusChanged      = "статус бронирования изменился, обновите страницу"
	msgNoSuchAlternative  = "выбранный вариант времени не найден"
	msgInvalidAction      = "неизвестное действие"
)

type Handler struct {
	service LifecycleService
	logger  Logger
}

func NewHandler(service LifecycleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Confirm PATCH /api/v1/admin/bookings/{bookingId}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.ActionConfirm, func(ctx context.Context, id int64, req *TransitionRequest) (*lifecycle.Result, error) {
		return h.service.Confirm(ctx, id, req.approval())
	})
}

// Reject PATCH /api/v1/admin/bookings/{bookingId}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.ActionReject, func(ctx context.Context, id int64, req *TransitionRequest) (*lifecycle.Result, error) {
		return h.service.RejectWithAlternatives(ctx, id, req.Alternatives, req.approval())
	})
}

// Cancel PATCH /api/v1/admin/bookings/{bookingId}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.ActionCancel, func(ctx context.Context, id int64, req *TransitionRequest) (*lifecycle.Result, error) {
		return h.service.Cancel(ctx, id, req.approval())
	})
}

// AcceptAlternative PATCH /api/v1/admin/bookings/{bookingId}/accept-alternative
func (h *Handler) AcceptAlternative(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.ActionAcceptAlternative, func(ctx context.Context, id int64, req *TransitionRequest) (*lifecycle.Result, error) {
		return h.service.AcceptAlternative(ctx, id, req.AlternativeIndex, req.approval())
	})
}

// Complete PATCH /api/v1/admin/bookings/{bookingId}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.ActionComplete, func(ctx context.Context, id int64, _ *TransitionRequest) (*lifecycle.Result, error) {
		return h.service.Complete(ctx, id)
	})
}

// Preview POST /api/v1/admin/bookings/{bookingId}/notification-preview
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/notification-preview - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req PreviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/notification-preview - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Action == "" {
		handlers.RespondBadRequest(w, msgInvalidAction)
		return
	}

	preview, err := h.service.Preview(r.Context(), &lifecycle.PreviewRequest{
		BookingID:        bookingID,
		Action:           domain.Action(req.Action),
		Alternatives:     req.Alternatives,
		AlternativeIndex: req.AlternativeIndex,
	})
	if err != nil {
		h.respondError(w, "POST /admin/bookings/{id}/notification-preview", bookingID, err)
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/notification-preview - Draft prepared: booking_id=%d, kind=%s",
		bookingID, preview.Kind)
	handlers.RespondJSON(w, http.StatusOK, FromPreview(preview))
}

type transitionFunc func(ctx context.Context, bookingID int64, req *TransitionRequest) (*lifecycle.Result, error)

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, action domain.Action, fn transitionFunc) {
	route := "PATCH /admin/bookings/{id}/" + string(action)

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Тело опционально: complete вызывается без него
	var req TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := fn(r.Context(), bookingID, &req)
	if err != nil {
		h.respondError(w, route, bookingID, err)
		return
	}

	if result.NotificationError != "" {
		h.logger.Warn("%s - Status changed but notification failed: booking_id=%d, error=%s",
			route, bookingID, result.NotificationError)
	}
	h.logger.Info("%s - Booking updated: booking_id=%d, %s -> %s, by=%s, notification_approved=%t",
		route, bookingID, result.Transition.From, result.Transition.To, adminName(r), req.Notification != nil && req.Notification.Approved)
	handlers.RespondJSON(w, http.StatusOK, FromResult(result))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, bookingID int64, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found: booking_id=%d", route, bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, lifecycle.ErrNotificationNotApproved):
		h.logger.Warn("%s - Notification not approved: booking_id=%d", route, bookingID)
		handlers.RespondBadRequest(w, msgNotApproved)

	case errors.Is(err, lifecycle.ErrNoSuchAlternative):
		h.logger.Warn("%s - No such alternative: booking_id=%d", route, bookingID)
		handlers.RespondBadRequest(w, msgNoSuchAlternative)

	case errors.Is(err, lifecycle.ErrStatusChanged):
		h.logger.Warn("%s - Status changed concurrently: booking_id=%d", route, bookingID)
		handlers.RespondConflict(w, msgStatusChanged)

	default:
		h.logger.Error("%s - Failed: booking_id=%d, error=%v", route, bookingID, err)
		handlers.RespondDomainError(w, err, true)
	}
}

func adminName(r *http.Request) string {
	if sub, ok := middleware.GetAdmin(r.Context()); ok && sub != "" {
		return sub
	}
	return "unknown"
}
