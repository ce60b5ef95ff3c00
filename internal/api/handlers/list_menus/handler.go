package list_menus

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

type Handler struct {
	service MenuService
	logger  Logger
}

func NewHandler(service MenuService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/menus
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /menus - Failed to list menus: %v", err)
		handlers.RespondDomainError(w, err, false)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}
