package domain

import "errors"

// Категории ошибок, общие для всех слоев.
// Пакеты оборачивают их через fmt.Errorf("%w: ...", ...), обработчики сверяют через errors.Is.
var (
	// ErrInvalidRange некорректные параметры сетки слотов (open >= close или interval <= 0)
	ErrInvalidRange = errors.New("invalid range")

	// ErrDataUnavailable хранилище не ответило, пустой результат вернуть нельзя
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrSlotNoLongerAvailable слот занят к моменту записи
	ErrSlotNoLongerAvailable = errors.New("slot no longer available")

	// ErrPersistence запись в хранилище не удалась
	ErrPersistence = errors.New("persistence error")

	// ErrValidation некорректные входные данные, хранилище не затрагивалось
	ErrValidation = errors.New("validation error")

	// ErrInvalidTransition переход статуса отсутствует в таблице переходов
	ErrInvalidTransition = errors.New("invalid status transition")
)
