package list_bookings

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

const msgInvalidIncludeInactive = "некорректное значение includeInactive, ожидается true или false"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings
// Query params: from, to (YYYY-MM-DD), status, includeInactive (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &models.ListBookingsRequest{
		From:   optional(q.Get("from")),
		To:     optional(q.Get("to")),
		Status: optional(q.Get("status")),
	}

	if raw := q.Get("includeInactive"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid includeInactive: %v", err)
			handlers.RespondBadRequest(w, msgInvalidIncludeInactive)
			return
		}
		req.IncludeInactive = include
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Failed to list bookings: %v", err)
		handlers.RespondDomainError(w, err, true)
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved successfully: count=%d", len(list.Bookings))
	handlers.RespondJSON(w, http.StatusOK, list)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
