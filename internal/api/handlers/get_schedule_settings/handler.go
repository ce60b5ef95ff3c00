package get_schedule_settings

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/schedule-settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/schedule-settings - Failed to get settings: %v", err)
		handlers.RespondDomainError(w, err, true)
		return
	}

	h.logger.Info("GET /admin/schedule-settings - Settings retrieved (default=%t)", settings.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, settings)
}
