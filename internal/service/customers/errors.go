package customers

import "errors"

var (
	// ErrMissingContact возвращается, когда не указаны ни email, ни телефон
	ErrMissingContact = errors.New("customers: email or phone is required")

	// ErrMissingName возвращается, когда имя пустое после нормализации
	ErrMissingName = errors.New("customers: name is required")
)
