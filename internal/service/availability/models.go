package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// SlotQuery запрос на проверку одного слота в момент записи
type SlotQuery struct {
	Date            time.Time
	Start           types.TimeString
	DurationMinutes int
	BufferMinutes   int
	// ExcludeBookingID бронирование, которое переносится и не должно мешать само себе
	ExcludeBookingID *int64
}
