package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/customer"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func TestGetByID(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID:          1,
		BookingDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "11:30",
		Status:      domain.StatusResuggesting,
		Alternatives: domain.Alternatives{
			{Date: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), StartTime: "13:00"},
		},
	}, nil)
	repo.On("GetByID", mock.Anything, int64(2)).Return(nil, bookingRepo.ErrBookingNotFound)
	repo.On("GetByID", mock.Anything, int64(3)).Return(nil, errors.New("timeout"))

	svc := NewService(repo, &mockCustomerRepo{}, logger.Nop())

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", resp.BookingDate)
	assert.Equal(t, "11:30", resp.EndTime)
	require.Len(t, resp.Alternatives, 1)
	assert.Equal(t, "2025-03-15", resp.Alternatives[0].Date)
	assert.NotNil(t, resp.PhotoURLs)

	_, err = svc.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByID(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestList_Filter(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("GetByFilter", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
		return f.IsSingleDate() && f.Status != nil && *f.Status == domain.StatusPending && !f.IncludeInactive
	})).Return([]*domain.Booking{}, nil)

	svc := NewService(repo, &mockCustomerRepo{}, logger.Nop())
	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{
		From:   ptr.Ptr("2025-03-14"),
		To:     ptr.Ptr("2025-03-14"),
		Status: ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	repo.AssertExpectations(t)
}

func TestList_InvalidFilter(t *testing.T) {
	tests := []struct {
		name string
		req  *models.ListBookingsRequest
	}{
		{"bad status", &models.ListBookingsRequest{Status: ptr.Ptr("archived")}},
		{"bad date", &models.ListBookingsRequest{From: ptr.Ptr("14.03.2025")}},
		{"reversed period", &models.ListBookingsRequest{From: ptr.Ptr("2025-03-20"), To: ptr.Ptr("2025-03-14")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&mockBookingRepo{}, &mockCustomerRepo{}, logger.Nop())
			_, err := svc.List(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestGetCustomerBookings(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("GetByFilter", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
		return f.CustomerID != nil && *f.CustomerID == 5 && f.IncludeInactive
	})).Return([]*domain.Booking{{ID: 1, Status: domain.StatusCancelled}}, nil)

	customers := &mockCustomerRepo{}
	customers.On("GetByID", mock.Anything, int64(5)).Return(&domain.Customer{ID: 5}, nil)
	customers.On("GetByID", mock.Anything, int64(6)).Return(nil, customerRepo.ErrCustomerNotFound)

	svc := NewService(repo, customers, logger.Nop())

	resp, err := svc.GetCustomerBookings(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetCustomerBookings(context.Background(), 6)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
