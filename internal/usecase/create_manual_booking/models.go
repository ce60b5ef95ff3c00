package create_manual_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель ручного бронирования администратором (телефон, визит)
type Request struct {
	CustomerID int64
	MenuID     int64
	AddOnIDs   []int64
	Date       time.Time
	StartTime  types.TimeString
	StaffNotes *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking       *domain.Booking
	IsNewCustomer bool
}
