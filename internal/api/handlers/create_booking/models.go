package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	MenuID      int64    `json:"menuId"`
	AddOnIDs    []int64  `json:"addOnIds,omitempty"`
	BookingDate string   `json:"bookingDate"` // "2025-10-15"
	StartTime   string   `json:"startTime"`   // "10:00"
	Notes       *string  `json:"notes,omitempty"`
	PhotoURLs   []string `json:"photoUrls,omitempty"`
}

// BookingResponse HTTP response model. Клиенту возвращаются только данные его заявки.
type BookingResponse struct {
	ID               int64   `json:"id"`
	BookingDate      string  `json:"bookingDate"`
	StartTime        string  `json:"startTime"`
	EndTime          string  `json:"endTime"`
	Status           string  `json:"status"`
	MenuName         string  `json:"menuName"`
	MenuPrice        float64 `json:"menuPrice"`
	NotificationSent bool    `json:"notificationSent"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := handlers.ParseDate(r.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("bookingDate: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	return &createBooking.Request{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		MenuID:    r.MenuID,
		AddOnIDs:  r.AddOnIDs,
		Date:      bookingDate,
		StartTime: startTime,
		Notes:     r.Notes,
		PhotoURLs: r.PhotoURLs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	b := resp.Booking
	return &BookingResponse{
		ID:               b.ID,
		BookingDate:      b.BookingDate.Format(domain.DateFormat),
		StartTime:        b.StartTime.String(),
		EndTime:          b.EndTime.String(),
		Status:           string(b.Status),
		MenuName:         b.MenuName,
		MenuPrice:        b.MenuPrice,
		NotificationSent: resp.NotificationSent,
	}
}
