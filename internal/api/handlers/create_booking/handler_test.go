package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

const validBody = `{
	"name": "山田 花子",
	"email": "hanako@example.com",
	"menuId": 1,
	"addOnIds": [4],
	"bookingDate": "2025-03-14",
	"startTime": "10:00"
}`

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{resp: &createBooking.Response{
		Booking: &domain.Booking{
			ID:          42,
			BookingDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			StartTime:   "10:00",
			EndTime:     "11:30",
			Status:      domain.StatusPending,
			MenuName:    "カット + トリートメント",
			MenuPrice:   8800,
		},
		NotificationSent: true,
	}}
	h := NewHandler(uc, logger.Nop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(42), body.ID)
	assert.Equal(t, "11:30", body.EndTime)
	assert.Equal(t, "pending", body.Status)
	assert.True(t, body.NotificationSent)

	assert.Equal(t, []int64{4}, uc.got.AddOnIDs)
	assert.Equal(t, "10:00", uc.got.StartTime.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"not json", "{", nil, http.StatusBadRequest},
		{"unknown field", `{"userId": 1}`, nil, http.StatusBadRequest},
		{"bad date", strings.Replace(validBody, "2025-03-14", "14.03.2025", 1), nil, http.StatusBadRequest},
		{"validation", validBody, fmt.Errorf("%w: name is required", domain.ErrValidation), http.StatusBadRequest},
		{"slot taken", validBody, fmt.Errorf("%w: 10:00", domain.ErrSlotNoLongerAvailable), http.StatusConflict},
		{"write failed", validBody, fmt.Errorf("%w: create booking", domain.ErrPersistence), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, logger.Nop())
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_PublicErrorHidesDetails(t *testing.T) {
	h := NewHandler(&stubUseCase{err: fmt.Errorf("%w: create booking: pq: deadlock", domain.ErrPersistence)}, logger.Nop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody)))

	assert.NotContains(t, rec.Body.String(), "pq:")
}
