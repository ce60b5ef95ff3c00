package availability

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// GenerateSlots возвращает все t, open <= t < close, с шагом interval по возрастанию.
// Слот может начинаться ближе к закрытию, чем длится услуга: такие слоты отсекает калькулятор.
func GenerateSlots(openTime, closeTime types.TimeString, intervalMinutes int) ([]types.TimeString, error) {
	if err := openTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: open: %v", domain.ErrInvalidRange, err)
	}
	if err := closeTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: close: %v", domain.ErrInvalidRange, err)
	}
	if !openTime.IsBefore(closeTime) {
		return nil, fmt.Errorf("%w: open %s is not before close %s", domain.ErrInvalidRange, openTime, closeTime)
	}
	if intervalMinutes <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive, got %d", domain.ErrInvalidRange, intervalMinutes)
	}

	closeMin := closeTime.Minutes()
	slots := make([]types.TimeString, 0, (closeMin-openTime.Minutes())/intervalMinutes+1)

	for m := openTime.Minutes(); m < closeMin; m += intervalMinutes {
		slot, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRange, err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// busyIntervals строит занятые интервалы дня.
// Бронирования расширяются на буфер уборки, блокировки берутся как есть.
func busyIntervals(
	bookings []*domain.Booking,
	blocks []*domain.AdminBlock,
	cleanupBufferMinutes int,
	excludeBookingID *int64,
) []domain.Interval {
	busy := make([]domain.Interval, 0, len(bookings)+len(blocks))

	for _, b := range bookings {
		if !b.OccupiesSlot() {
			continue
		}
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		start, end := b.StartTime.Minutes(), b.EndTime.Minutes()
		if start < 0 || end <= start {
			continue
		}
		busy = append(busy, domain.Interval{Start: start, End: end + cleanupBufferMinutes})
	}

	for _, bl := range blocks {
		start, end := bl.StartTime.Minutes(), bl.EndTime.Minutes()
		if start < 0 || end <= start {
			continue
		}
		busy = append(busy, domain.Interval{Start: start, End: end})
	}

	return busy
}

// filterSlots оставляет слоты, где услуга заканчивается до закрытия и
// интервал [t, t+duration+buffer) не пересекается с занятыми
func filterSlots(
	grid []types.TimeString,
	closeTime types.TimeString,
	durationMinutes int,
	bufferMinutes int,
	busy []domain.Interval,
) []types.TimeString {
	closeMin := closeTime.Minutes()
	result := make([]types.TimeString, 0, len(grid))

	for _, slot := range grid {
		start := slot.Minutes()
		if start+durationMinutes > closeMin {
			continue
		}

		candidate := domain.Interval{Start: start, End: start + durationMinutes + bufferMinutes}
		if overlapsAny(candidate, busy) {
			continue
		}
		result = append(result, slot)
	}

	return result
}

func overlapsAny(candidate domain.Interval, busy []domain.Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
