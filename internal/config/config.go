// Package config загрузка конфигурации сервиса из TOML
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server           ServerConfig           `toml:"server"`
	Database         DatabaseConfig         `toml:"database"`
	Logs             LogsConfig             `toml:"logs"`
	Metrics          MetricsConfig          `toml:"metrics"`
	DirectoryService DirectoryServiceConfig `toml:"directory_service"`
	Notifications    NotificationsConfig    `toml:"notifications"`
	Scheduling       SchedulingConfig       `toml:"scheduling"`
	Reconciliation   ReconciliationConfig   `toml:"reconciliation"`
}

// ServerConfig настройки HTTP сервера
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
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
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DirectoryServiceConfig настройки клиента справочника (врачи, кабинеты, тарифы)
type DirectoryServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// NotificationsConfig настройки публикации событий в RabbitMQ
type NotificationsConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// SchedulingConfig параметры планирования
type SchedulingConfig struct {
	// Timezone клиники: в ней интерпретируются границы рабочего дня (HH:MM)
	Timezone string `toml:"timezone"`
	// CommitTimeout таймаут транзакции создания бронирования, секунды
	CommitTimeout int `toml:"commit_timeout"`
}

// ReconciliationConfig настройки фоновой сверки "осиротевших" бронирований
type ReconciliationConfig struct {
	Enabled bool `toml:"enabled"`
	// Interval период запуска сверки, секунды
	Interval int `toml:"interval"`
	// GraceMinutes сколько минут активное бронирование приёма может жить без платёжной записи
	GraceMinutes int `toml:"grace_minutes"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "clinic-scheduling-service"
	}
	if cfg.Scheduling.Timezone == "" {
		cfg.Scheduling.Timezone = "UTC"
	}
	if cfg.Scheduling.CommitTimeout == 0 {
		cfg.Scheduling.CommitTimeout = 5
	}
	if cfg.Reconciliation.Interval == 0 {
		cfg.Reconciliation.Interval = 300
	}
	if cfg.Reconciliation.GraceMinutes == 0 {
		cfg.Reconciliation.GraceMinutes = 30
	}
}
