package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidDate возвращается при некорректной дате фильтра
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// Request модели

// ListBookingsRequest запрос списка бронирований в админке
type ListBookingsRequest struct {
	From            *string `json:"from,omitempty"`            // "2025-10-15"
	To              *string `json:"to,omitempty"`              // "2025-10-20"
	Status          *string `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool    `json:"includeInactive,omitempty"` // Включить отмененные и отклоненные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{IncludeInactive: r.IncludeInactive}

	if r.From != nil {
		d, err := time.Parse(domain.DateFormat, *r.From)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.StartDate = &d
	}
	if r.To != nil {
		d, err := time.Parse(domain.DateFormat, *r.To)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.EndDate = &d
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return filter, ErrInvalidDate
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AlternativeResponse предложенное альтернативное время
type AlternativeResponse struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	CustomerID  *int64 `json:"customerId,omitempty"`
	MenuID      *int64 `json:"menuId,omitempty"`
	BookingDate string `json:"bookingDate"` // "2025-10-15"
	StartTime   string `json:"startTime"`   // "10:00"
	EndTime     string `json:"endTime"`     // "11:30"
	Status      string `json:"status"`
	NewCustomer bool   `json:"newCustomer"`

	// Денормализованные данные
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail,omitempty"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	MenuName      string  `json:"menuName"`
	MenuPrice     float64 `json:"menuPrice"`

	Alternatives []AlternativeResponse `json:"alternatives"`
	Notes        *string               `json:"notes,omitempty"`
	StaffNotes   *string               `json:"staffNotes,omitempty"`
	PhotoURLs    []string              `json:"photoUrls"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		MenuID:        b.MenuID,
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		StartTime:     b.StartTime.String(),
		EndTime:       b.EndTime.String(),
		Status:        string(b.Status),
		NewCustomer:   b.NewCustomer,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		MenuName:      b.MenuName,
		MenuPrice:     b.MenuPrice,
		Alternatives:  make([]AlternativeResponse, len(b.Alternatives)),
		Notes:         b.Notes,
		StaffNotes:    b.StaffNotes,
		PhotoURLs:     b.PhotoURLs,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	for i, alt := range b.Alternatives {
		resp.Alternatives[i] = AlternativeResponse{
			Date:      alt.Date.Format(domain.DateFormat),
			StartTime: alt.StartTime.String(),
		}
	}
	if resp.PhotoURLs == nil {
		resp.PhotoURLs = []string{}
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
