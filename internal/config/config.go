package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Sweep    SweepConfig
	Cache    CacheConfig
	LogLevel string
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig selects the gorm dialect and its DSN.
type DatabaseConfig struct {
	Driver        string // postgres or sqlite
	DSN           string
	SlowThreshold time.Duration
}

// SweepConfig holds the periodic recompute schedule.
type SweepConfig struct {
	CronSchedule string
	Timeout      time.Duration
}

// CacheConfig holds the market price cache settings.
type CacheConfig struct {
	PriceTTL time.Duration
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		_ = godotenv.Load()
	}

	slow, err := durationEnv("DB_SLOW_THRESHOLD", 200*time.Millisecond)
	if err != nil {
		return nil, err
	}
	sweepTimeout, err := durationEnv("SWEEP_TIMEOUT", 2*time.Minute)
	if err != nil {
		return nil, err
	}
	priceTTL, err := durationEnv("PRICE_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Driver:        getenvWithDefault("DB_DRIVER", DriverPostgres),
			DSN:           os.Getenv("DATABASE_URL"),
			SlowThreshold: slow,
		},
		Sweep: SweepConfig{
			CronSchedule: getenvWithDefault("SWEEP_CRON_SCHEDULE", "*/15 * * * *"),
			Timeout:      sweepTimeout,
		},
		Cache: CacheConfig{
			PriceTTL: priceTTL,
		},
		LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return errors.New("DATABASE_URL must be provided for the postgres driver")
		}
	case DriverSQLite:
		if c.Database.DSN == "" {
			c.Database.DSN = "file:smartagri.db?_foreign_keys=on"
		}
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.Database.Driver)
	}

	if _, err := cron.ParseStandard(c.Sweep.CronSchedule); err != nil {
		return fmt.Errorf("SWEEP_CRON_SCHEDULE is invalid: %w", err)
	}

	if c.Sweep.Timeout <= 0 {
		return errors.New("SWEEP_TIMEOUT must be positive")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s is not a duration: %w", key, err)
	}
	return d, nil
}
