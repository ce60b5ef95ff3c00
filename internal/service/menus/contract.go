package menus

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// MenuRepository интерфейс репозитория меню
type MenuRepository interface {
	GetAll(ctx context.Context) ([]*domain.MenuItem, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.MenuItem, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
