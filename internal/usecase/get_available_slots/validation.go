package get_available_slots

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.MenuIDs) == 0 {
		return fmt.Errorf("%w: menuId is required", ErrInvalidInput)
	}

	return nil
}
