package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextTransition_Table(t *testing.T) {
	tests := []struct {
		name         string
		from         BookingStatus
		action       Action
		alternatives int
		wantTo       BookingStatus
		wantNotify   NotificationKind
		wantRecheck  bool
	}{
		{"pending confirm", StatusPending, ActionConfirm, 0, StatusConfirmed, NotificationConfirmation, false},
		{"pending reject with alternatives", StatusPending, ActionReject, 2, StatusResuggesting, NotificationResuggestion, false},
		{"pending reject without alternatives", StatusPending, ActionReject, 0, StatusCancelled, NotificationCancellation, false},
		{"pending cancel", StatusPending, ActionCancel, 0, StatusCancelled, NotificationCancellation, false},
		{"pending complete", StatusPending, ActionComplete, 0, StatusCompleted, NotificationNone, false},
		{"confirmed reject with alternatives", StatusConfirmed, ActionReject, 3, StatusResuggesting, NotificationResuggestion, false},
		{"confirmed cancel", StatusConfirmed, ActionCancel, 0, StatusCancelled, NotificationCancellation, false},
		{"confirmed complete", StatusConfirmed, ActionComplete, 0, StatusCompleted, NotificationNone, false},
		{"resuggesting accept", StatusResuggesting, ActionAcceptAlternative, 0, StatusConfirmed, NotificationConfirmation, true},
		{"resuggesting cancel", StatusResuggesting, ActionCancel, 0, StatusCancelled, NotificationCancellation, false},
		{"resuggesting complete", StatusResuggesting, ActionComplete, 0, StatusCompleted, NotificationNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NextTransition(tt.from, tt.action, tt.alternatives)
			require.NoError(t, err)
			assert.Equal(t, tt.from, tr.From)
			assert.Equal(t, tt.wantTo, tr.To)
			assert.Equal(t, tt.wantNotify, tr.Notification)
			assert.Equal(t, tt.wantRecheck, tr.Revalidate)
		})
	}
}

func TestNextTransition_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		from   BookingStatus
		action Action
	}{
		{"confirm confirmed", StatusConfirmed, ActionConfirm},
		{"confirm resuggesting without accepting", StatusResuggesting, ActionConfirm},
		{"reject resuggesting", StatusResuggesting, ActionReject},
		{"accept on pending", StatusPending, ActionAcceptAlternative},
		{"cancel cancelled", StatusCancelled, ActionCancel},
		{"complete completed", StatusCompleted, ActionComplete},
		{"anything from rejected", StatusRejected, ActionConfirm},
		{"unknown status", BookingStatus("archived"), ActionCancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NextTransition(tt.from, tt.action, 0)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestNextTransition_TooManyAlternatives(t *testing.T) {
	_, err := NextTransition(StatusPending, ActionReject, 4)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBookingStatus_OccupiesSlot(t *testing.T) {
	assert.True(t, StatusPending.OccupiesSlot())
	assert.True(t, StatusConfirmed.OccupiesSlot())
	for _, s := range []BookingStatus{StatusRejected, StatusResuggesting, StatusCompleted, StatusCancelled} {
		assert.False(t, s.OccupiesSlot(), s)
	}
}

func TestDeriveEndTime(t *testing.T) {
	end, err := DeriveEndTime("10:00", 60, 30)
	require.NoError(t, err)
	assert.Equal(t, "11:30", end.String())

	_, err = DeriveEndTime("23:00", 90)
	assert.Error(t, err)
}

func TestInterval_Overlaps(t *testing.T) {
	busy := Interval{Start: 13 * 60, End: 14*60 + 30}

	assert.True(t, Interval{Start: 13 * 60, End: 14 * 60}.Overlaps(busy))
	assert.True(t, Interval{Start: 12*60 + 30, End: 13*60 + 1}.Overlaps(busy))
	assert.False(t, Interval{Start: 14*60 + 30, End: 16 * 60}.Overlaps(busy), "touching end")
	assert.False(t, Interval{Start: 11*60 + 30, End: 13 * 60}.Overlaps(busy), "touching start")
}

func TestScheduleSettings_Validate(t *testing.T) {
	s := DefaultScheduleSettings()
	require.NoError(t, s.Validate())

	s.CloseTime = s.OpenTime
	assert.ErrorIs(t, s.Validate(), ErrInvalidRange)

	s = DefaultScheduleSettings()
	s.SlotIntervalMinutes = 0
	assert.ErrorIs(t, s.Validate(), ErrInvalidRange)

	s = DefaultScheduleSettings()
	s.NewCustomerBufferMinutes = -5
	assert.ErrorIs(t, s.Validate(), ErrValidation)

	s = DefaultScheduleSettings()
	assert.Equal(t, 60, s.BufferFor(true))
	assert.Equal(t, 30, s.BufferFor(false))
}

func TestActionNotifies(t *testing.T) {
	for _, a := range []Action{ActionConfirm, ActionReject, ActionCancel, ActionAcceptAlternative} {
		assert.True(t, ActionNotifies(a), a)
	}
	assert.False(t, ActionNotifies(ActionComplete))
	assert.False(t, ActionNotifies(Action("archive")))
}

func TestScheduleSettings_CheckBookingDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	s := DefaultScheduleSettings()

	assert.NoError(t, s.CheckBookingDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), now))
	assert.NoError(t, s.CheckBookingDate(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), now))
	assert.ErrorIs(t, s.CheckBookingDate(time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), now), ErrDateInPast)

	s.AdvanceBookingDays = 30
	assert.NoError(t, s.CheckBookingDate(time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC), now))
	err := s.CheckBookingDate(time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), now)
	assert.ErrorIs(t, err, ErrDateBeyondWindow)
	assert.ErrorIs(t, err, ErrValidation)
}
