package get_customer_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgCustomerNotFound  = "клиент не найден"
)

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

// Handle GET /api/v1/admin/customers/{customerId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, err := handlers.PathID(r, "customerId")
	if err != nil {
		h.logger.Warn("GET /admin/customers/{id}/bookings - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	list, err := h.service.GetCustomerBookings(r.Context(), customerID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrCustomerNotFound):
			h.logger.Warn("GET /admin/customers/{id}/bookings - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		default:
			h.logger.Error("GET /admin/customers/{id}/bookings - Failed to get history: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondDomainError(w, err, true)
		}
		return
	}

	h.logger.Info("GET /admin/customers/{id}/bookings - History retrieved: customer_id=%d, count=%d",
		customerID, len(list.Bookings))
	handlers.RespondJSON(w, http.StatusOK, list)
}
