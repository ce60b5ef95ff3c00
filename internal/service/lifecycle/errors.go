package lifecycle

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("lifecycle: booking not found")

	// ErrNotificationNotApproved возвращается, когда переход с письмом вызван без одобренного черновика
	ErrNotificationNotApproved = errors.New("lifecycle: notification draft must be reviewed and approved")

	// ErrStatusChanged возвращается, когда статус изменился параллельно и условный UPDATE не сработал
	ErrStatusChanged = errors.New("lifecycle: booking status changed concurrently")

	// ErrNoSuchAlternative возвращается при выборе несуществующей альтернативы
	ErrNoSuchAlternative = errors.New("lifecycle: alternative index out of range")

	// ErrInvalidAlternative возвращается при некорректной альтернативе (дата в прошлом, дубликат)
	ErrInvalidAlternative = errors.New("lifecycle: invalid alternative")
)
