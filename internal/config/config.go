package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	App       AppConfig       `toml:"app"`
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Redis     RedisConfig     `toml:"redis"`
	Notifier  NotifierConfig  `toml:"notifier"`
	Auth      AuthConfig      `toml:"auth"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// AppConfig параметры салона
type AppConfig struct {
	ShopName string `toml:"shop_name"`
	Timezone string `toml:"timezone"`
}

// Location часовой пояс салона
func (c AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды, 0 для SSE-потока без ограничения
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File   string `toml:"file"`
	Level  string `toml:"level"`
	Format string `toml:"format"` // json | console
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// ScheduleConfig расписание по умолчанию, пока администратор не сохранил настройки
type ScheduleConfig struct {
	OpenTime                       string `toml:"open_time"`
	CloseTime                      string `toml:"close_time"`
	SlotIntervalMinutes            int    `toml:"slot_interval_minutes"`
	CleanupBufferMinutes           int    `toml:"cleanup_buffer_minutes"`
	NewCustomerBufferMinutes       int    `toml:"new_customer_buffer_minutes"`
	ReturningCustomerBufferMinutes int    `toml:"returning_customer_buffer_minutes"`
	AdvanceBookingDays             int    `toml:"advance_booking_days"`
}

// ToDomain конвертирует в доменные настройки
func (c ScheduleConfig) ToDomain() (*domain.ScheduleSettings, error) {
	open, err := types.NewTimeStringFromString(c.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("open_time: %w", err)
	}
	closeTime, err := types.NewTimeStringFromString(c.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("close_time: %w", err)
	}

	s := &domain.ScheduleSettings{
		OpenTime:                       open,
		CloseTime:                      closeTime,
		SlotIntervalMinutes:            c.SlotIntervalMinutes,
		CleanupBufferMinutes:           c.CleanupBufferMinutes,
		NewCustomerBufferMinutes:       c.NewCustomerBufferMinutes,
		ReturningCustomerBufferMinutes: c.ReturningCustomerBufferMinutes,
		AdvanceBookingDays:             c.AdvanceBookingDays,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	PoolSize int    `toml:"pool_size"`
	Channel  string `toml:"channel"`
}

type NotifierConfig struct {
	Driver   string `toml:"driver"` // log | amqp | http
	AMQPURL  string `toml:"amqp_url"`
	Queue    string `toml:"queue"`
	RelayURL string `toml:"relay_url"`
	Token    string `toml:"token"`
	Timeout  int    `toml:"timeout"` // секунды
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	Issuer    string `toml:"issuer"`
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
	// TrustedProxies IP или CIDR обратных прокси, от которых принимается X-Forwarded-For
	TrustedProxies []string `toml:"trusted_proxies"`
}

// Load читает TOML-файл. Переменные окружения вида ${VAR} подставляются до разбора,
// .env рядом с процессом загружается, если существует.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(os.ExpandEnv(string(data)))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse разбирает TOML, применяет значения по умолчанию и валидирует результат
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.ShopName == "" {
		c.App.ShopName = "nua"
	}
	if c.App.Timezone == "" {
		c.App.Timezone = "Asia/Tokyo"
	}

	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 20
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Logs.Format == "" {
		c.Logs.Format = "json"
	}

	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "salon_booking"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}

	if c.Schedule.OpenTime == "" {
		c.Schedule.OpenTime = domain.DefaultOpenTime
	}
	if c.Schedule.CloseTime == "" {
		c.Schedule.CloseTime = domain.DefaultCloseTime
	}
	if c.Schedule.SlotIntervalMinutes == 0 {
		c.Schedule.SlotIntervalMinutes = domain.DefaultSlotIntervalMinutes
	}
	if c.Schedule.CleanupBufferMinutes == 0 {
		c.Schedule.CleanupBufferMinutes = domain.DefaultCleanupBufferMinutes
	}
	if c.Schedule.NewCustomerBufferMinutes == 0 {
		c.Schedule.NewCustomerBufferMinutes = domain.DefaultNewCustomerBufferMinutes
	}
	if c.Schedule.ReturningCustomerBufferMinutes == 0 {
		c.Schedule.ReturningCustomerBufferMinutes = domain.DefaultReturningCustomerBufferMinutes
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}

	if c.Notifier.Driver == "" {
		c.Notifier.Driver = "log"
	}
	if c.Notifier.Timeout == 0 {
		c.Notifier.Timeout = 5
	}

	if c.Auth.Issuer == "" {
		c.Auth.Issuer = "salon-admin"
	}

	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 0.2
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 3
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if _, err := c.App.Location(); err != nil {
		return fmt.Errorf("app.timezone: %w", err)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be between 1 and 65535")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return errors.New("database.host and database.dbname are required")
	}
	if _, err := c.Schedule.ToDomain(); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwt_secret is required")
	}

	switch c.Notifier.Driver {
	case "log":
	case "amqp":
		if c.Notifier.AMQPURL == "" {
			return errors.New("notifier.amqp_url is required for amqp driver")
		}
	case "http":
		if c.Notifier.RelayURL == "" {
			return errors.New("notifier.relay_url is required for http driver")
		}
	default:
		return fmt.Errorf("unknown notifier.driver %q", c.Notifier.Driver)
	}

	if c.RateLimit.Enabled && c.RateLimit.RPS < 0 {
		return errors.New("rate_limit.rps must not be negative")
	}
	for _, p := range c.RateLimit.TrustedProxies {
		if net.ParseIP(p) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(p); err != nil {
			return fmt.Errorf("rate_limit.trusted_proxies: invalid entry %q", p)
		}
	}
	return nil
}
