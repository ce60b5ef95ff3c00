package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending      BookingStatus = "pending"
	StatusConfirmed    BookingStatus = "confirmed"
	StatusRejected     BookingStatus = "rejected" // исторический статус, новые переходы в него не ведут
	StatusResuggesting BookingStatus = "resuggesting"
	StatusCompleted    BookingStatus = "completed"
	StatusCancelled    BookingStatus = "cancelled"
)

// IsValid returns true if the status belongs to the closed status set
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusResuggesting, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// OccupiesSlot returns true if a booking in this status blocks its time in the schedule
func (s BookingStatus) OccupiesSlot() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal returns true if no transition leaves this status
func (s BookingStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusCancelled
}

// Booking represents a salon appointment
type Booking struct {
	ID         int64
	CustomerID *int64
	MenuID     *int64

	// Denormalized data for history
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	MenuName      string
	MenuPrice     float64

	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      BookingStatus

	// NewCustomer фиксирует класс буфера, с которым бронирование было создано
	NewCustomer  bool
	Alternatives Alternatives
	Notes        *string
	StaffNotes   *string
	PhotoURLs    []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationMinutes returns the service duration, EndTime - StartTime
func (b *Booking) DurationMinutes() int {
	return b.EndTime.Minutes() - b.StartTime.Minutes()
}

// OccupiesSlot returns true if the booking is part of the busy set
func (b *Booking) OccupiesSlot() bool {
	return b.Status.OccupiesSlot()
}

// HasRecipient returns true if the customer can receive email notifications
func (b *Booking) HasRecipient() bool {
	return b.CustomerEmail != ""
}

// BookingsFilter фильтр для списка бронирований в админке
type BookingsFilter struct {
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	CustomerID      *int64         // Фильтр по клиенту (опционально)
	IncludeInactive bool           // Включать ли отмененные и отклоненные
}

// IsSingleDate returns true if the filter selects exactly one day
func (f BookingsFilter) IsSingleDate() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}

// DeriveEndTime вычисляет время окончания как начало плюс сумма длительностей услуг
func DeriveEndTime(start types.TimeString, durations ...int) (types.TimeString, error) {
	total := 0
	for _, d := range durations {
		total += d
	}
	return start.AddMinutes(total)
}
