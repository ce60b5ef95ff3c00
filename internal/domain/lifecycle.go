package domain

import "fmt"

// Action действие администратора над бронированием
type Action string

const (
	ActionConfirm           Action = "confirm"
	ActionReject            Action = "reject"
	ActionCancel            Action = "cancel"
	ActionAcceptAlternative Action = "accept_alternative"
	ActionComplete          Action = "complete"
)

// NotificationKind вид письма клиенту
type NotificationKind string

const (
	NotificationNone            NotificationKind = ""
	NotificationConfirmation    NotificationKind = "confirmation"
	NotificationCancellation    NotificationKind = "cancellation"
	NotificationResuggestion    NotificationKind = "resuggestion"
	NotificationBookingReceived NotificationKind = "booking_received"
)

// Transition результат перехода: новый статус и побочный эффект
type Transition struct {
	From         BookingStatus
	To           BookingStatus
	Action       Action
	Notification NotificationKind
	// Revalidate требует повторной проверки доступности нового времени перед записью
	Revalidate bool
}

// RequiresNotification returns true if the transition sends a customer notification
func (t Transition) RequiresNotification() bool {
	return t.Notification != NotificationNone
}

type transitionKey struct {
	from             BookingStatus
	action           Action
	withAlternatives bool
}

var transitions = map[transitionKey]Transition{
	{StatusPending, ActionConfirm, false}:  {To: StatusConfirmed, Notification: NotificationConfirmation},
	{StatusPending, ActionReject, true}:    {To: StatusResuggesting, Notification: NotificationResuggestion},
	{StatusPending, ActionReject, false}:   {To: StatusCancelled, Notification: NotificationCancellation},
	{StatusPending, ActionCancel, false}:   {To: StatusCancelled, Notification: NotificationCancellation},
	{StatusPending, ActionComplete, false}: {To: StatusCompleted},

	{StatusConfirmed, ActionReject, true}:    {To: StatusResuggesting, Notification: NotificationResuggestion},
	{StatusConfirmed, ActionReject, false}:   {To: StatusCancelled, Notification: NotificationCancellation},
	{StatusConfirmed, ActionCancel, false}:   {To: StatusCancelled, Notification: NotificationCancellation},
	{StatusConfirmed, ActionComplete, false}: {To: StatusCompleted},

	{StatusResuggesting, ActionAcceptAlternative, false}: {
		To: StatusConfirmed, Notification: NotificationConfirmation, Revalidate: true,
	},
	{StatusResuggesting, ActionCancel, false}:   {To: StatusCancelled, Notification: NotificationCancellation},
	{StatusResuggesting, ActionComplete, false}: {To: StatusCompleted},
}

// NextTransition единственная функция переходов жизненного цикла.
// alternatives учитывается только для ActionReject: 0 означает отмену, 1..3 предложение альтернатив.
func NextTransition(from BookingStatus, action Action, alternatives int) (Transition, error) {
	if alternatives < 0 || alternatives > MaxAlternatives {
		return Transition{}, fmt.Errorf("%w: at most %d alternatives allowed, got %d",
			ErrValidation, MaxAlternatives, alternatives)
	}

	key := transitionKey{from: from, action: action, withAlternatives: action == ActionReject && alternatives > 0}
	t, ok := transitions[key]
	if !ok {
		return Transition{}, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, from)
	}

	t.From = from
	t.Action = action
	return t, nil
}

// ActionNotifies returns true if any transition for the action sends a notification
func ActionNotifies(action Action) bool {
	for key, t := range transitions {
		if key.action == action && t.RequiresNotification() {
			return true
		}
	}
	return false
}
