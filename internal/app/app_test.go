package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smart-agriculture/internal/clock"
	"smart-agriculture/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0"},
		Database: config.DatabaseConfig{
			Driver:        config.DriverSQLite,
			DSN:           fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
			SlowThreshold: time.Second,
		},
		Sweep: config.SweepConfig{CronSchedule: "*/15 * * * *", Timeout: time.Minute},
		Cache: config.CacheConfig{PriceTTL: time.Minute},
	}
}

func TestAppLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clk := clock.Fixed(time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC))

	a, err := New(testConfig(), zap.NewNop(), clk)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.NoError(t, a.Migrate())
	require.NoError(t, a.Ping(context.Background()))

	summary, err := a.Seed(context.Background())
	require.NoError(t, err)
	assert.Positive(t, summary.Farms)
	assert.Positive(t, summary.IrrigationRecords)

	result, err := a.Sweep.Run(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, result.InventoryChecked, summary.Inventory)

	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	s := a.Scheduler()
	require.NoError(t, s.Start())
	s.Stop()
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Database.Driver = "oracle"
	_, err := New(cfg, zap.NewNop(), clock.System())
	assert.Error(t, err)
}
