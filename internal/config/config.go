package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"

	// Часовые пояса календаря не должны зависеть от zoneinfo в образе
	_ "time/tzdata"
)

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig возвращается при недопустимых значениях
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Calendar    CalendarConfig    `toml:"calendar"`
	Notifier    NotifierConfig    `toml:"notifier"`
	Redis       RedisConfig       `toml:"redis"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
	Idempotency IdempotencyConfig `toml:"idempotency"`
	Admin       AdminConfig       `toml:"admin"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"SERVER_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	RequestTimeout  int `toml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	AutoMigrate     bool   `toml:"auto_migrate" env:"DB_AUTO_MIGRATE"`
}

// LogsConfig логирование
type LogsConfig struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
	File  string `toml:"file" env:"LOG_FILE"`
}

// MetricsConfig prometheus метрики
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path" env:"METRICS_PATH"`
	ServiceName string `toml:"service_name" env:"METRICS_SERVICE_NAME"`
}

// CalendarConfig часовой пояс сервисного календаря
type CalendarConfig struct {
	Timezone string `toml:"timezone" env:"CALENDAR_TIMEZONE"`
}

// NotifierConfig webhook уведомлений о новых бронированиях
type NotifierConfig struct {
	Enabled bool   `toml:"enabled" env:"NOTIFIER_ENABLED"`
	URL     string `toml:"url" env:"NOTIFIER_URL"`
	Token   string `toml:"token" env:"NOTIFIER_TOKEN"`
	Timeout int    `toml:"timeout" env:"NOTIFIER_TIMEOUT"`
}

// RedisConfig блокировка дня при записи
type RedisConfig struct {
	Enabled  bool   `toml:"enabled" env:"REDIS_ENABLED"`
	Addr     string `toml:"addr" env:"REDIS_ADDR"`
	Password string `toml:"password" env:"REDIS_PASSWORD"`
	DB       int    `toml:"db" env:"REDIS_DB"`
}

// RateLimitConfig ограничение частоты создания бронирований с одного IP
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled" env:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `toml:"requests_per_second" env:"RATE_LIMIT_RPS"`
	Burst             int     `toml:"burst" env:"RATE_LIMIT_BURST"`
	// IdleTTL секунды, после которых неактивный IP забывается
	IdleTTL int `toml:"idle_ttl" env:"RATE_LIMIT_IDLE_TTL"`
	// TrustedProxies IP или CIDR, от которых принимается X-Forwarded-For
	TrustedProxies []string `toml:"trusted_proxies" env:"RATE_LIMIT_TRUSTED_PROXIES" env-separator:","`
}

// IdempotencyConfig хранение ответов по Idempotency-Key, TTL в секундах
type IdempotencyConfig struct {
	TTL int `toml:"ttl" env:"IDEMPOTENCY_TTL"`
}

// AdminConfig токен администратора (X-Admin-Token)
type AdminConfig struct {
	Token string `toml:"token" env:"ADMIN_TOKEN"`
}

// Load читает toml файл, затем применяет переменные окружения и значения по умолчанию
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrReadConfig, err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 5
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
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

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "fleet_booking_service"
	}

	if c.Calendar.Timezone == "" {
		c.Calendar.Timezone = "America/Phoenix"
	}

	if c.Notifier.Timeout == 0 {
		c.Notifier.Timeout = 5
	}

	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 1
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 5
	}
	if c.RateLimit.IdleTTL == 0 {
		c.RateLimit.IdleTTL = 10 * 60
	}

	if c.Idempotency.TTL == 0 {
		c.Idempotency.TTL = 24 * 60 * 60
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("%w: database host, user and dbname are required", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(c.Calendar.Timezone); err != nil {
		return fmt.Errorf("%w: calendar timezone %q: %v", ErrInvalidConfig, c.Calendar.Timezone, err)
	}
	if c.Notifier.Enabled && c.Notifier.URL == "" {
		return fmt.Errorf("%w: notifier url is required when notifier is enabled", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 || c.RateLimit.IdleTTL < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidConfig)
	}
	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location часовой пояс календаря, Validate гарантирует корректность
func (c CalendarConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
