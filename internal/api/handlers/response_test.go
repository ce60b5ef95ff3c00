package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: name", domain.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: 10:00", domain.ErrSlotNoLongerAvailable), http.StatusConflict},
		{domain.ErrInvalidTransition, http.StatusConflict},
		{fmt.Errorf("%w: read", domain.ErrDataUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: write", domain.ErrPersistence), http.StatusInternalServerError},
		{domain.ErrInvalidRange, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err))
		})
	}
}

func TestRespondDomainError_Details(t *testing.T) {
	err := fmt.Errorf("%w: search customer: connection refused", domain.ErrPersistence)

	rec := httptest.NewRecorder()
	RespondDomainError(rec, err, false)
	var public ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&public))
	assert.Empty(t, public.Details)

	rec = httptest.NewRecorder()
	RespondDomainError(rec, err, true)
	var admin ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&admin))
	assert.Contains(t, admin.Details, "search customer")
}

func TestRespondDomainError_ValidationAlwaysDetailed(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, fmt.Errorf("%w: email or phone is required", domain.ErrValidation), false)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email or phone is required")
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "x"}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "x", v.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "x", "extra": 1}`))
	assert.Error(t, DecodeJSON(req, &v))
}
