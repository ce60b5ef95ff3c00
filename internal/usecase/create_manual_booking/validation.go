package create_manual_booking

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerId must be positive", ErrInvalidInput)
	}
	if req.MenuID <= 0 {
		return fmt.Errorf("%w: menuId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if req.StaffNotes != nil && utf8.RuneCountInString(*req.StaffNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: staffNotes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

func menuIDs(req *Request) []int64 {
	ids := make([]int64, 0, 1+len(req.AddOnIDs))
	ids = append(ids, req.MenuID)
	return append(ids, req.AddOnIDs...)
}
