package domain

// Default schedule values, used until the admin saves schedule settings
const (
	DefaultOpenTime                       = "09:00"
	DefaultCloseTime                      = "18:00"
	DefaultSlotIntervalMinutes            = 30
	DefaultCleanupBufferMinutes           = 30
	DefaultNewCustomerBufferMinutes       = 60
	DefaultReturningCustomerBufferMinutes = 30
	DefaultAdvanceBookingDays             = 0 // 0 = unlimited
)

// Business validation constants
const (
	MinSlotIntervalMinutes = 5
	MaxSlotIntervalMinutes = 240
	MaxBufferMinutes       = 240
	MaxAdvanceBookingDays  = 365
	MaxAlternatives        = 3
	MaxNotesLength         = 500
	MaxNameLength          = 100
	MaxBlockLabelLength    = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы, которые занимают время в расписании
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, скрываемые из списков по умолчанию
var InactiveStatuses = []BookingStatus{
	StatusRejected,
	StatusCancelled,
}
