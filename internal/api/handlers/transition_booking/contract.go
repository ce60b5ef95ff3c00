package transition_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lifecycle"
)

// LifecycleService переходы статусов бронирования
type LifecycleService interface {
	Confirm(ctx context.Context, bookingID int64, approval *lifecycle.Approval) (*lifecycle.Result, error)
	RejectWithAlternatives(ctx context.Context, bookingID int64, alternatives domain.Alternatives, approval *lifecycle.Approval) (*lifecycle.Result, error)
	Cancel(ctx context.Context, bookingID int64, approval *lifecycle.Approval) (*lifecycle.Result, error)
	AcceptAlternative(ctx context.Context, bookingID int64, index int, approval *lifecycle.Approval) (*lifecycle.Result, error)
	Complete(ctx context.Context, bookingID int64) (*lifecycle.Result, error)
	Preview(ctx context.Context, req *lifecycle.PreviewRequest) (*lifecycle.Preview, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
