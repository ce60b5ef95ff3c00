package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date          time.Time // Дата (без времени)
	MenuIDs       []int64   // Основная услуга и опции
	IsNewCustomer bool      // Выбирает буфер нового или постоянного клиента
	// Public запрос с сайта: прошедшие даты и даты за окном бронирования дают пустой список
	Public bool
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	DurationMinutes int
	BufferMinutes   int
	Slots           []types.TimeString
}
