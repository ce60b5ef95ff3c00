package create_manual_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/internal/service/menus"
	createManualBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_manual_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgCustomerNotFound   = "клиент не найден"
	msgMenuNotFound       = "услуга не найдена"
)

type Handler struct {
	useCase CreateManualBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateManualBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateManualBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admin/bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createManualBooking.ErrCustomerNotFound):
			h.logger.Warn("POST /admin/bookings - Customer not found: customer_id=%d", req.CustomerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, menus.ErrMenuNotFound):
			h.logger.Warn("POST /admin/bookings - Menu not found: menu_id=%d", req.MenuID)
			handlers.RespondNotFound(w, msgMenuNotFound)

		default:
			h.logger.Error("POST /admin/bookings - Failed to create booking: customer_id=%d, error=%v", req.CustomerID, err)
			handlers.RespondDomainError(w, err, true)
		}
		return
	}

	h.logger.Info("POST /admin/bookings - Booking created: booking_id=%d, customer_id=%d", result.Booking.ID, req.CustomerID)
	handlers.RespondJSON(w, http.StatusCreated, &ManualBookingResponse{
		BookingResponse: models.FromDomainBooking(result.Booking),
		IsNewCustomer:   result.IsNewCustomer,
	})
}
