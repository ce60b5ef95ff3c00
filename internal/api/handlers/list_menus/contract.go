package list_menus

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/menus"
)

type MenuService interface {
	List(ctx context.Context) ([]menus.MenuResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
