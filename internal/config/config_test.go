package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("SWEEP_CRON_SCHEDULE", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.NotEmpty(t, cfg.Database.DSN)
	assert.Equal(t, "*/15 * * * *", cfg.Sweep.CronSchedule)
	assert.Equal(t, 2*time.Minute, cfg.Sweep.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Cache.PriceTTL)
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "APP_PORT=9090\nDB_DRIVER=postgres\nDATABASE_URL=postgres://agri@localhost/agri\nPRICE_CACHE_TTL=1m\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	t.Cleanup(func() {
		for _, k := range []string{"APP_PORT", "DB_DRIVER", "DATABASE_URL", "PRICE_CACHE_TTL"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres://agri@localhost/agri", cfg.Database.DSN)
	assert.Equal(t, time.Minute, cfg.Cache.PriceTTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Database: DatabaseConfig{Driver: "postgres", DSN: "postgres://x"},
			Sweep:    SweepConfig{CronSchedule: "*/5 * * * *", Timeout: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Database.DSN = "" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "oracle" }, wantErr: true},
		{name: "bad cron", mutate: func(c *Config) { c.Sweep.CronSchedule = "every day" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Sweep.Timeout = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
