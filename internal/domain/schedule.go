package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	// ErrDateInPast дата бронирования уже прошла
	ErrDateInPast = errors.New("booking date is in the past")

	// ErrDateBeyondWindow дата дальше, чем разрешает advanceBookingDays
	ErrDateBeyondWindow = errors.New("booking date is beyond the advance booking window")
)

// ScheduleSettings represents the salon's booking configuration.
// Stored as a single row; until the admin saves it, defaults from the config file apply.
type ScheduleSettings struct {
	ID                             int64
	OpenTime                       types.TimeString
	CloseTime                      types.TimeString
	SlotIntervalMinutes            int
	CleanupBufferMinutes           int
	NewCustomerBufferMinutes       int
	ReturningCustomerBufferMinutes int
	AdvanceBookingDays             int // 0 = unlimited
	UpdatedAt                      time.Time
}

// DefaultScheduleSettings returns the built-in schedule
func DefaultScheduleSettings() *ScheduleSettings {
	return &ScheduleSettings{
		OpenTime:                       DefaultOpenTime,
		CloseTime:                      DefaultCloseTime,
		SlotIntervalMinutes:            DefaultSlotIntervalMinutes,
		CleanupBufferMinutes:           DefaultCleanupBufferMinutes,
		NewCustomerBufferMinutes:       DefaultNewCustomerBufferMinutes,
		ReturningCustomerBufferMinutes: DefaultReturningCustomerBufferMinutes,
		AdvanceBookingDays:             DefaultAdvanceBookingDays,
	}
}

// BusinessHours returns the slot grid parameters
func (s *ScheduleSettings) BusinessHours() BusinessHours {
	return BusinessHours{
		Open:                 s.OpenTime,
		Close:                s.CloseTime,
		IntervalMinutes:      s.SlotIntervalMinutes,
		CleanupBufferMinutes: s.CleanupBufferMinutes,
	}
}

// BufferFor returns the requested buffer for the customer class
func (s *ScheduleSettings) BufferFor(isNewCustomer bool) int {
	if isNewCustomer {
		return s.NewCustomerBufferMinutes
	}
	return s.ReturningCustomerBufferMinutes
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *ScheduleSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// Validate checks the settings. Range problems wrap ErrInvalidRange, the rest ErrValidation.
func (s *ScheduleSettings) Validate() error {
	if err := s.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: openTime: %v", ErrValidation, err)
	}
	if err := s.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: closeTime: %v", ErrValidation, err)
	}
	if !s.OpenTime.IsBefore(s.CloseTime) {
		return fmt.Errorf("%w: openTime %s must be before closeTime %s", ErrInvalidRange, s.OpenTime, s.CloseTime)
	}
	if s.SlotIntervalMinutes <= 0 {
		return fmt.Errorf("%w: slotIntervalMinutes must be positive", ErrInvalidRange)
	}
	if s.SlotIntervalMinutes < MinSlotIntervalMinutes || s.SlotIntervalMinutes > MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: slotIntervalMinutes must be between %d and %d",
			ErrValidation, MinSlotIntervalMinutes, MaxSlotIntervalMinutes)
	}

	buffers := map[string]int{
		"cleanupBufferMinutes":           s.CleanupBufferMinutes,
		"newCustomerBufferMinutes":       s.NewCustomerBufferMinutes,
		"returningCustomerBufferMinutes": s.ReturningCustomerBufferMinutes,
	}
	for name, v := range buffers {
		if v < 0 || v > MaxBufferMinutes {
			return fmt.Errorf("%w: %s must be between 0 and %d", ErrValidation, name, MaxBufferMinutes)
		}
	}

	if s.AdvanceBookingDays < 0 || s.AdvanceBookingDays > MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between 0 and %d", ErrValidation, MaxAdvanceBookingDays)
	}
	return nil
}

// CheckBookingDate проверяет, что дату можно бронировать относительно now.
// Сравниваются только календарные даты.
func (s *ScheduleSettings) CheckBookingDate(date, now time.Time) error {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if day.Before(today) {
		return fmt.Errorf("%w: %w", ErrValidation, ErrDateInPast)
	}
	if s.HasAdvanceBookingLimit() && day.After(today.AddDate(0, 0, s.AdvanceBookingDays)) {
		return fmt.Errorf("%w: %w: can only book %d days in advance", ErrValidation, ErrDateBeyondWindow, s.AdvanceBookingDays)
	}
	return nil
}

// IsToday returns true if date is the same calendar day as now
func IsToday(date, now time.Time) bool {
	return date.Year() == now.Year() && date.Month() == now.Month() && date.Day() == now.Day()
}
