package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает с сеткой слотов
	ErrInvalidTimeSlot = errors.New("create_booking: start time is not on the slot grid")

	// ErrTooLateToBook возвращается, когда время начала сегодня уже прошло
	ErrTooLateToBook = errors.New("create_booking: start time has already passed")
)
