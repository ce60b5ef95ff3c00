package create_booking

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// maxPhotoURLs ограничение на количество фото в заявке
const maxPhotoURLs = 3

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)
	if email == "" && phone == "" {
		return fmt.Errorf("%w: email or phone is required", ErrInvalidInput)
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
	}

	if req.MenuID <= 0 {
		return fmt.Errorf("%w: menuId must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if len(req.PhotoURLs) > maxPhotoURLs {
		return fmt.Errorf("%w: at most %d photos allowed", ErrInvalidInput, maxPhotoURLs)
	}
	for _, raw := range req.PhotoURLs {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			return fmt.Errorf("%w: invalid photo url", ErrInvalidInput)
		}
	}

	return nil
}

// validateGrid проверяет, что начало совпадает с одним из слотов сетки
func validateGrid(start types.TimeString, hours domain.BusinessHours) error {
	offset := start.Minutes() - hours.Open.Minutes()
	if offset < 0 || start.Minutes() >= hours.Close.Minutes() || offset%hours.IntervalMinutes != 0 {
		return fmt.Errorf("%w: %s (open %s, every %d min)", ErrInvalidTimeSlot, start, hours.Open, hours.IntervalMinutes)
	}
	return nil
}

func menuIDs(req *Request) []int64 {
	ids := make([]int64, 0, 1+len(req.AddOnIDs))
	ids = append(ids, req.MenuID)
	return append(ids, req.AddOnIDs...)
}
