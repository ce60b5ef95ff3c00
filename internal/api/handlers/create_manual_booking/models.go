package create_manual_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	createManualBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_manual_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CreateManualBookingRequest HTTP request model
type CreateManualBookingRequest struct {
	CustomerID  int64   `json:"customerId"`
	MenuID      int64   `json:"menuId"`
	AddOnIDs    []int64 `json:"addOnIds,omitempty"`
	BookingDate string  `json:"bookingDate"`
	StartTime   string  `json:"startTime"`
	StaffNotes  *string `json:"staffNotes,omitempty"`
}

// ManualBookingResponse HTTP response model
type ManualBookingResponse struct {
	*models.BookingResponse
	IsNewCustomer bool `json:"isNewCustomer"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateManualBookingRequest) ToUseCaseRequest() (*createManualBooking.Request, error) {
	bookingDate, err := handlers.ParseDate(r.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("bookingDate: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	return &createManualBooking.Request{
		CustomerID: r.CustomerID,
		MenuID:     r.MenuID,
		AddOnIDs:   r.AddOnIDs,
		Date:       bookingDate,
		StartTime:  startTime,
		StaffNotes: r.StaffNotes,
	}, nil
}
