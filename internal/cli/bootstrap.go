package cli

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

// loadConfig читает конфигурацию и переводит процесс в часовой пояс салона.
// Даты бронирований и "сегодня" считаются в time.Local.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.App.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	time.Local = loc
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	opts := []logger.Option{logger.WithField("service", cfg.Metrics.ServiceName)}
	if cfg.Logs.Format == "console" {
		opts = append(opts, logger.WithConsoleFormat())
	}
	return logger.New(cfg.Logs.File, cfg.Logs.Level, opts...)
}

// openDB открывает пул соединений и проверяет доступность базы
func openDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
