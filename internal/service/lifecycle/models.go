package lifecycle

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Approval черновик письма, проверенный администратором
type Approval struct {
	Approved bool
	Subject  string
	Body     string
}

// Command одно действие администратора над бронированием
type Command struct {
	BookingID        int64
	Action           domain.Action
	Alternatives     domain.Alternatives // для reject
	AlternativeIndex int                 // для accept_alternative
	Approval         *Approval
}

// Result итог перехода. Ошибка письма не откатывает переход и возвращается здесь.
type Result struct {
	Booking           *domain.Booking
	Transition        domain.Transition
	NotificationSent  bool
	NotificationError string
}

// PreviewRequest запрос черновика письма до выполнения действия
type PreviewRequest struct {
	BookingID        int64
	Action           domain.Action
	Alternatives     domain.Alternatives
	AlternativeIndex int
}

// Preview черновик письма для проверки администратором
type Preview struct {
	Kind         domain.NotificationKind
	To           string
	HasRecipient bool
	Subject      string
	Body         string
}
