package get_available_slots

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string   `json:"date"`
	DurationMinutes int      `json:"duration"`
	BufferMinutes   int      `json:"buffer"`
	Slots           []string `json:"slots"`
}

// ToUseCaseRequest разбирает query: date, menuId (повторяется для опций), newCustomer
func ToUseCaseRequest(q url.Values, public bool) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseDate(q.Get("date"))
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	ids := make([]int64, 0, len(q["menuId"]))
	for _, raw := range q["menuId"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("menuId: invalid value %q", raw)
		}
		ids = append(ids, id)
	}

	isNew := true
	if raw := q.Get("newCustomer"); raw != "" {
		isNew, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("newCustomer: %w", err)
		}
	}

	return &getAvailableSlots.Request{
		Date:          date,
		MenuIDs:       ids,
		IsNewCustomer: isNew,
		Public:        public,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = s.String()
	}
	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		BufferMinutes:   resp.BufferMinutes,
		Slots:           slots,
	}
}
