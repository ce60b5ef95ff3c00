package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель заявки с сайта
type Request struct {
	Name      string
	Email     string
	Phone     string
	MenuID    int64   // Основная услуга
	AddOnIDs  []int64 // Дополнительные опции
	Date      time.Time
	StartTime types.TimeString
	Notes     *string
	PhotoURLs []string // Фото-референсы (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking          *domain.Booking
	IsNewCustomer    bool
	NotificationSent bool
}
