package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Calculator считает свободные слоты дня.
// Буфер уборки (BusinessHours.CleanupBufferMinutes) и запрошенный буфер клиента передаются раздельно.
type Calculator struct {
	bookingRepo BookingRepository
	blockRepo   AdminBlockRepository
	recorder    CheckRecorder
	logger      Logger
}

// NewCalculator создает калькулятор доступности
func NewCalculator(bookingRepo BookingRepository, blockRepo AdminBlockRepository, logger Logger) *Calculator {
	return &Calculator{
		bookingRepo: bookingRepo,
		blockRepo:   blockRepo,
		logger:      logger,
	}
}

// WithRecorder подключает учет повторных проверок
func (c *Calculator) WithRecorder(r CheckRecorder) *Calculator {
	c.recorder = r
	return c
}

// AvailableSlots возвращает начала слотов, в которые помещается услуга длительностью
// durationMinutes вместе с буфером bufferMinutes. Пустой список допустим.
// Ошибка хранилища возвращается как domain.ErrDataUnavailable, а не как пустой список.
func (c *Calculator) AvailableSlots(
	ctx context.Context,
	hours domain.BusinessHours,
	date time.Time,
	durationMinutes int,
	bufferMinutes int,
) ([]types.TimeString, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", domain.ErrValidation, durationMinutes)
	}
	if bufferMinutes < 0 {
		return nil, fmt.Errorf("%w: buffer must not be negative, got %d", domain.ErrValidation, bufferMinutes)
	}

	// 1. Сетка дня
	grid, err := GenerateSlots(hours.Open, hours.Close, hours.IntervalMinutes)
	if err != nil {
		return nil, err
	}

	// 2. Занятые интервалы
	busy, err := c.loadBusy(ctx, date, hours.CleanupBufferMinutes, nil)
	if err != nil {
		return nil, err
	}

	// 3. Фильтрация
	slots := filterSlots(grid, hours.Close, durationMinutes, bufferMinutes, busy)

	c.logger.Info("AvailableSlots: date=%s, duration=%d, buffer=%d, busy=%d, free=%d/%d",
		date.Format(domain.DateFormat), durationMinutes, bufferMinutes, len(busy), len(slots), len(grid))

	return slots, nil
}

// IsAvailable повторно проверяет один слот по тем же правилам, что и AvailableSlots.
// Вызывается внутри транзакции записи, чтобы чтение бронирований шло с блокировкой.
func (c *Calculator) IsAvailable(ctx context.Context, hours domain.BusinessHours, q SlotQuery) (bool, error) {
	if q.DurationMinutes <= 0 || q.BufferMinutes < 0 {
		return false, fmt.Errorf("%w: duration=%d buffer=%d", domain.ErrValidation, q.DurationMinutes, q.BufferMinutes)
	}
	if err := q.Start.Validate(); err != nil {
		return false, fmt.Errorf("%w: start: %v", domain.ErrValidation, err)
	}

	start := q.Start.Minutes()
	if start < hours.Open.Minutes() || start+q.DurationMinutes > hours.Close.Minutes() {
		c.record(false)
		return false, nil
	}

	busy, err := c.loadBusy(ctx, q.Date, hours.CleanupBufferMinutes, q.ExcludeBookingID)
	if err != nil {
		return false, err
	}

	candidate := domain.Interval{Start: start, End: start + q.DurationMinutes + q.BufferMinutes}
	available := !overlapsAny(candidate, busy)
	c.record(available)

	return available, nil
}

func (c *Calculator) loadBusy(
	ctx context.Context,
	date time.Time,
	cleanupBufferMinutes int,
	excludeBookingID *int64,
) ([]domain.Interval, error) {
	bookings, err := c.bookingRepo.GetOccupyingByDate(ctx, date)
	if err != nil {
		c.logger.Error("Availability: failed to get bookings for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: get bookings: %w", domain.ErrDataUnavailable, err)
	}

	blocks, err := c.blockRepo.GetByDate(ctx, date)
	if err != nil {
		c.logger.Error("Availability: failed to get admin blocks for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: get admin blocks: %w", domain.ErrDataUnavailable, err)
	}

	return busyIntervals(bookings, blocks, cleanupBufferMinutes, excludeBookingID), nil
}

func (c *Calculator) record(available bool) {
	if c.recorder != nil {
		c.recorder.RecordAvailabilityCheck(available)
	}
}
