package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	msgInternalError     = "внутренняя ошибка сервера"
	msgValidation        = "некорректные входные данные"
	msgSlotNotAvailable  = "выбранное время уже занято, обновите список свободных слотов"
	msgDataUnavailable   = "данные временно недоступны, повторите запрос"
	msgPersistence       = "не удалось сохранить изменения"
	msgInvalidTransition = "действие недоступно для текущего статуса бронирования"
	msgScheduleMisconfig = "некорректные настройки расписания"

	maxRequestBodyBytes = 1 << 20
)

// ErrorResponse тело ответа с ошибкой.
// Details заполняется только для админских запросов и называет шаг, на котором произошла ошибка.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// DecodeJSON декодирует тело запроса, неизвестные поля запрещены
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// RespondJSON пишет JSON-ответ. nil-тело дает пустой ответ с кодом.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	if v == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// StatusFromError сопоставляет категорию доменной ошибки с HTTP-кодом
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSlotNoLongerAvailable), errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDataUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError отвечает по категории доменной ошибки.
// При detailed текст ошибки уходит в Details (админка), публичные ответы его не раскрывают.
func RespondDomainError(w http.ResponseWriter, err error, detailed bool) {
	var message string
	switch {
	case errors.Is(err, domain.ErrValidation):
		message = msgValidation
		// Ошибки валидации безопасно показывать и клиенту
		detailed = true
	case errors.Is(err, domain.ErrSlotNoLongerAvailable):
		message = msgSlotNotAvailable
	case errors.Is(err, domain.ErrInvalidTransition):
		message = msgInvalidTransition
	case errors.Is(err, domain.ErrDataUnavailable):
		message = msgDataUnavailable
	case errors.Is(err, domain.ErrPersistence):
		message = msgPersistence
	case errors.Is(err, domain.ErrInvalidRange):
		message = msgScheduleMisconfig
	default:
		message = msgInternalError
	}

	resp := ErrorResponse{Error: message}
	if detailed {
		resp.Details = err.Error()
	}
	RespondJSON(w, StatusFromError(err), resp)
}

// PathID читает целочисленный параметр пути
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// ParseDate разбирает дату YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}
