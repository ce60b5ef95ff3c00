package manage_blocks

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/blocks"
)

const (
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBlockID     = "некорректный ID блокировки"
	msgNotFound           = "блокировка не найдена"
)

type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/blocks?date=YYYY-MM-DD
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /admin/blocks - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	list, err := h.service.ListByDate(r.Context(), date)
	if err != nil {
		handlers.RespondDomainError(w, err, true)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Create POST /api/v1/admin/blocks
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req blocks.CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	block, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.logger.Warn("POST /admin/blocks - Failed to create block: %v", err)
		handlers.RespondDomainError(w, err, true)
		return
	}

	h.logger.Info("POST /admin/blocks - Block created: id=%d", block.ID)
	handlers.RespondJSON(w, http.StatusCreated, block)
}

// Delete DELETE /api/v1/admin/blocks/{blockId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	blockID, err := handlers.PathID(r, "blockId")
	if err != nil {
		h.logger.Warn("DELETE /admin/blocks/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	if err := h.service.Delete(r.Context(), blockID); err != nil {
		switch {
		case errors.Is(err, blocks.ErrBlockNotFound):
			h.logger.Warn("DELETE /admin/blocks/{id} - Block not found: id=%d", blockID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/blocks/{id} - Failed to delete block: id=%d, error=%v", blockID, err)
			handlers.RespondDomainError(w, err, true)
		}
		return
	}

	h.logger.Info("DELETE /admin/blocks/{id} - Block deleted: id=%d", blockID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
