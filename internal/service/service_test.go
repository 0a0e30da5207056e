package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smart-agriculture/internal/clock"
	"smart-agriculture/internal/config"
	"smart-agriculture/internal/idgen"
	"smart-agriculture/internal/metrics"
	"smart-agriculture/internal/repository"
)

var testNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	clock      *clock.FixedClock
	metrics    *metrics.Metrics
	records    *Records
	monitoring *repository.MonitoringRepository
	irrigation repository.IrrigationRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repository.Open(config.DatabaseConfig{
		Driver:        config.DriverSQLite,
		DSN:           fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		SlowThreshold: time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	m, err := metrics.New()
	require.NoError(t, err)

	clk := clock.Fixed(testNow)
	stores := repository.NewStores(db, clk, idgen.New())
	return &testEnv{
		clock:      clk,
		metrics:    m,
		records:    NewRecords(stores, m, zap.NewNop()),
		monitoring: repository.NewMonitoringRepository(db),
		irrigation: repository.NewIrrigationRepository(db),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nullDec(s string) decimal.NullDecimal { return decimal.NewNullDecimal(dec(s)) }

func timePtr(t time.Time) *time.Time { return &t }
