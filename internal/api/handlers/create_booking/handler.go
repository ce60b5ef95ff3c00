package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/menus"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMenuNotFound       = "услуга не найдена"
	msgDateInPast         = "дата бронирования уже прошла"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgInvalidTimeSlot    = "время не совпадает с сеткой записи"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, menus.ErrMenuNotFound):
			h.logger.Warn("POST /bookings - Menu not found: menu_id=%d, add_ons=%v", req.MenuID, req.AddOnIDs)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, domain.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, domain.ErrDateBeyondWindow):
			h.logger.Warn("POST /bookings - Date too far in future: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: %s %s", req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: %s %s", req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, domain.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /bookings - Slot not available: %s %s", req.BookingDate, req.StartTime)
			handlers.RespondDomainError(w, err, false)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: %s %s, error=%v", req.BookingDate, req.StartTime, err)
			handlers.RespondDomainError(w, err, false)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, new_customer=%t",
		result.Booking.ID, result.IsNewCustomer)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
