// Package config загрузка конфигурации сервиса из TOML-файла
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Membership MembershipConfig `toml:"membership"`
	Queue      QueueConfig      `toml:"queue"`
	Booking    BookingConfig    `toml:"booking"`
}

// ServerConfig настройки HTTP-сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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

// DSN собирает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// MembershipConfig настройки клиента сервиса членства (скидки)
type MembershipConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// QueueConfig настройки публикации событий жизненного цикла в RabbitMQ
type QueueConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// BookingConfig бизнес-константы движка бронирований.
// Проценты удержания при отмене и смещение напоминания — именованная
// конфигурация, а не литералы в коде: их можно менять per-deployment.
type BookingConfig struct {
	FullChargeWithinHours   int     `toml:"full_charge_within_hours"`
	HalfChargeWithinHours   int     `toml:"half_charge_within_hours"`
	FullChargePercent       float64 `toml:"full_charge_percent"`
	HalfChargePercent       float64 `toml:"half_charge_percent"`
	ReminderOffsetHours     int     `toml:"reminder_offset_hours"`
	CompletionSweepSeconds  int     `toml:"completion_sweep_seconds"`
}

// CancellationPolicy собирает тариф отмены из конфигурации
func (c BookingConfig) CancellationPolicy() domain.CancellationPolicy {
	return domain.CancellationPolicy{
		Tiers: []domain.CancellationTier{
			{NoticeLessThan: time.Duration(c.FullChargeWithinHours) * time.Hour, ChargePercent: c.FullChargePercent},
			{NoticeLessThan: time.Duration(c.HalfChargeWithinHours) * time.Hour, ChargePercent: c.HalfChargePercent},
		},
	}
}

// ReminderOffset смещение напоминания до начала бронирования
func (c BookingConfig) ReminderOffset() time.Duration {
	return time.Duration(c.ReminderOffsetHours) * time.Hour
}

// CompletionSweepInterval период фонового перевода бронирований в completed
func (c BookingConfig) CompletionSweepInterval() time.Duration {
	return time.Duration(c.CompletionSweepSeconds) * time.Second
}

// Load читает конфигурацию из TOML-файла и применяет дефолты
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "facility-service",
			Path:        "/metrics",
		},
		Booking: BookingConfig{
			FullChargeWithinHours:  2,
			HalfChargeWithinHours:  24,
			FullChargePercent:      100,
			HalfChargePercent:      50,
			ReminderOffsetHours:    int(domain.DefaultReminderOffset.Hours()),
			CompletionSweepSeconds: int(domain.DefaultCompletionSweepInterval.Seconds()),
		},
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Booking.FullChargeWithinHours > cfg.Booking.HalfChargeWithinHours {
		return nil, fmt.Errorf("config: full_charge_within_hours must not exceed half_charge_within_hours")
	}

	return cfg, nil
}
