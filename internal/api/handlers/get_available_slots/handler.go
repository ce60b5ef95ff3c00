package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/menus"
)

const (
	msgInvalidQuery = "некорректные параметры: ожидаются date=YYYY-MM-DD, menuId, newCustomer=true|false"
	msgMenuNotFound = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	public  bool
	logger  Logger
}

// NewHandler создает обработчик. public включает правила сайта:
// прошедшие даты и даты за окном бронирования дают пустой список.
func NewHandler(useCase GetAvailableSlotsUseCase, public bool, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		public:  public,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots и GET /api/v1/admin/available-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query(), h.public)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, menus.ErrMenuNotFound):
			h.logger.Warn("GET /available-slots - Menu not found: menu_ids=%v", useCaseReq.MenuIDs)
			handlers.RespondNotFound(w, msgMenuNotFound)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: date=%s, menu_ids=%v, error=%v",
				r.URL.Query().Get("date"), useCaseReq.MenuIDs, err)
			handlers.RespondDomainError(w, err, !h.public)
		}
		return
	}

	h.logger.Info("GET /available-slots - Slots retrieved: date=%s, menu_ids=%v, slots_count=%d",
		r.URL.Query().Get("date"), useCaseReq.MenuIDs, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
