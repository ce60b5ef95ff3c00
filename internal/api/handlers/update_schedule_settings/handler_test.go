package update_schedule_settings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/settings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubService struct {
	got *models.UpdateSettingsRequest
	err error
}

func (s *stubService) Update(_ context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.SettingsResponse{OpenTime: "10:00", CloseTime: "19:00", SlotIntervalMinutes: 30}, nil
}

func TestHandle_PartialUpdate(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, logger.Nop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"openTime": "10:00"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.OpenTime)
	assert.Equal(t, "10:00", *svc.got.OpenTime)
	assert.Nil(t, svc.got.CloseTime)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"bad json", `{"openTime": 10}`, nil, http.StatusBadRequest},
		{"open after close", `{"openTime": "20:00"}`, fmt.Errorf("%w: openTime 20:00", domain.ErrInvalidRange), http.StatusBadRequest},
		{"buffer too large", `{"cleanupBufferMinutes": 999}`, fmt.Errorf("%w: cleanupBufferMinutes", domain.ErrValidation), http.StatusBadRequest},
		{"write failed", `{"openTime": "10:00"}`, fmt.Errorf("%w: upsert", domain.ErrPersistence), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubService{err: tt.err}, logger.Nop())
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPut, "/", strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
