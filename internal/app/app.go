package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"smart-agriculture/internal/clock"
	"smart-agriculture/internal/config"
	"smart-agriculture/internal/idgen"
	"smart-agriculture/internal/logger"
	"smart-agriculture/internal/metrics"
	"smart-agriculture/internal/repository"
	"smart-agriculture/internal/router"
	"smart-agriculture/internal/scheduler"
	"smart-agriculture/internal/service"
)

// App holds the wired services shared by every command.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *gorm.DB
	Clock  clock.Clock

	Metrics     *metrics.Metrics
	Stores      *repository.Stores
	Records     *service.Records
	Monitoring  *repository.MonitoringRepository
	Transitions *service.TransitionService
	Analytics   service.AnalyticsService
	Prices      *service.MarketPriceService
	Sweep       *service.SweepService
}

// New opens the database and builds the service graph. The schema is not migrated.
func New(cfg *config.Config, log *zap.Logger, clk clock.Clock) (*App, error) {
	db, err := repository.Open(cfg.Database, log)
	if err != nil {
		return nil, err
	}

	m, err := metrics.New()
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	stores := repository.NewStores(db, clk, idgen.New())
	records := service.NewRecords(stores, m, logger.Named(log, "records"))
	monitoring := repository.NewMonitoringRepository(db)

	return &App{
		Config:      cfg,
		Logger:      log,
		DB:          db,
		Clock:       clk,
		Metrics:     m,
		Stores:      stores,
		Records:     records,
		Monitoring:  monitoring,
		Transitions: service.NewTransitionService(records, clk, m, log),
		Analytics:   service.NewAnalyticsService(repository.NewIrrigationRepository(db)),
		Prices:      service.NewMarketPriceService(monitoring, records.MarketPrices, cfg.Cache.PriceTTL),
		Sweep:       service.NewSweepService(records, monitoring, clk, m, log),
	}, nil
}

// Migrate brings the schema up to date.
func (a *App) Migrate() error {
	return repository.Migrate(a.DB)
}

// Seed loads the demo dataset.
func (a *App) Seed(ctx context.Context) (repository.SeedSummary, error) {
	return repository.NewSeeder(a.DB, a.Stores, a.Clock, logger.Named(a.Logger, "seed")).SeedDatabase(ctx)
}

// Router builds the HTTP engine.
func (a *App) Router() *gin.Engine {
	return router.New(router.Dependencies{
		Records:     a.Records,
		Transitions: a.Transitions,
		Analytics:   a.Analytics,
		Prices:      a.Prices,
		Monitoring:  a.Monitoring,
		Clock:       a.Clock,
		Metrics:     a.Metrics,
		Ping:        a.Ping,
	}, a.Logger)
}

// Scheduler builds the periodic sweep runner.
func (a *App) Scheduler() *scheduler.Scheduler {
	return scheduler.NewScheduler(a.Config.Sweep, a.Sweep, logger.Named(a.Logger, "scheduler"))
}

// Ping checks that the database answers.
func (a *App) Ping(ctx context.Context) error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the database connection pool.
func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
