package update_schedule_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRange       = "время открытия должно быть раньше закрытия, интервал больше нуля"
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

// Handle PUT /api/v1/admin/schedule-settings
// Обновляются только переданные поля.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule-settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	settings, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRange):
			// Здесь это ошибка ввода администратора, а не сломанная конфигурация
			h.logger.Warn("PUT /admin/schedule-settings - Invalid range: %v", err)
			handlers.RespondJSON(w, http.StatusBadRequest, handlers.ErrorResponse{Error: msgInvalidRange, Details: err.Error()})

		default:
			h.logger.Warn("PUT /admin/schedule-settings - Failed to update settings: %v", err)
			handlers.RespondDomainError(w, err, true)
		}
		return
	}

	h.logger.Info("PUT /admin/schedule-settings - Settings updated: %s-%s every %d min",
		settings.OpenTime, settings.CloseTime, settings.SlotIntervalMinutes)
	handlers.RespondJSON(w, http.StatusOK, settings)
}
