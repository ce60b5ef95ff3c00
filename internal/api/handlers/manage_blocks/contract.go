package manage_blocks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/service/blocks"
)

type BlockService interface {
	ListByDate(ctx context.Context, date time.Time) ([]blocks.BlockResponse, error)
	Create(ctx context.Context, req *blocks.CreateBlockRequest) (*blocks.BlockResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
