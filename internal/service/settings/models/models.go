package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UpdateSettingsRequest запрос на обновление настроек расписания.
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	OpenTime                       *string `json:"openTime,omitempty"`
	CloseTime                      *string `json:"closeTime,omitempty"`
	SlotIntervalMinutes            *int    `json:"slotIntervalMinutes,omitempty"`
	CleanupBufferMinutes           *int    `json:"cleanupBufferMinutes,omitempty"`
	NewCustomerBufferMinutes       *int    `json:"newCustomerBufferMinutes,omitempty"`
	ReturningCustomerBufferMinutes *int    `json:"returningCustomerBufferMinutes,omitempty"`
	AdvanceBookingDays             *int    `json:"advanceBookingDays,omitempty"`
}

// SettingsResponse ответ с настройками расписания
type SettingsResponse struct {
	OpenTime                       string     `json:"openTime"`
	CloseTime                      string     `json:"closeTime"`
	SlotIntervalMinutes            int        `json:"slotIntervalMinutes"`
	CleanupBufferMinutes           int        `json:"cleanupBufferMinutes"`
	NewCustomerBufferMinutes       int        `json:"newCustomerBufferMinutes"`
	ReturningCustomerBufferMinutes int        `json:"returningCustomerBufferMinutes"`
	AdvanceBookingDays             int        `json:"advanceBookingDays"`
	IsDefault                      bool       `json:"isDefault"` // настройки еще не сохранялись
	UpdatedAt                      *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.ScheduleSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		OpenTime:                       s.OpenTime.String(),
		CloseTime:                      s.CloseTime.String(),
		SlotIntervalMinutes:            s.SlotIntervalMinutes,
		CleanupBufferMinutes:           s.CleanupBufferMinutes,
		NewCustomerBufferMinutes:       s.NewCustomerBufferMinutes,
		ReturningCustomerBufferMinutes: s.ReturningCustomerBufferMinutes,
		AdvanceBookingDays:             s.AdvanceBookingDays,
		IsDefault:                      s.ID == 0,
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// Apply применяет переданные поля к копии настроек
func (r *UpdateSettingsRequest) Apply(current domain.ScheduleSettings) (*domain.ScheduleSettings, error) {
	if r.OpenTime != nil {
		t, err := types.NewTimeStringFromString(*r.OpenTime)
		if err != nil {
			return nil, err
		}
		current.OpenTime = t
	}
	if r.CloseTime != nil {
		t, err := types.NewTimeStringFromString(*r.CloseTime)
		if err != nil {
			return nil, err
		}
		current.CloseTime = t
	}
	if r.SlotIntervalMinutes != nil {
		current.SlotIntervalMinutes = *r.SlotIntervalMinutes
	}
	if r.CleanupBufferMinutes != nil {
		current.CleanupBufferMinutes = *r.CleanupBufferMinutes
	}
	if r.NewCustomerBufferMinutes != nil {
		current.NewCustomerBufferMinutes = *r.NewCustomerBufferMinutes
	}
	if r.ReturningCustomerBufferMinutes != nil {
		current.ReturningCustomerBufferMinutes = *r.ReturningCustomerBufferMinutes
	}
	if r.AdvanceBookingDays != nil {
		current.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	return &current, nil
}

// IsEmpty returns true if no field is set
func (r *UpdateSettingsRequest) IsEmpty() bool {
	return r.OpenTime == nil && r.CloseTime == nil && r.SlotIntervalMinutes == nil &&
		r.CleanupBufferMinutes == nil && r.NewCustomerBufferMinutes == nil &&
		r.ReturningCustomerBufferMinutes == nil && r.AdvanceBookingDays == nil
}
