package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"smart-agriculture/internal/config"
	"smart-agriculture/internal/service"
)

// Sweeper runs one pass of the time-driven transitions.
type Sweeper interface {
	Run(ctx context.Context) (service.SweepResult, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	cfg     config.SweepConfig
	logger  *zap.Logger
}

// NewScheduler creates a new scheduler instance. Schedules use the standard
// five-field cron syntax evaluated in UTC; a run still in progress makes the
// next tick skip.
func NewScheduler(cfg config.SweepConfig, sweeper Sweeper, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	return &Scheduler{
		cron:    c,
		sweeper: sweeper,
		cfg:     cfg,
		logger:  logger,
	}
}

// Start registers the sweep and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runSweep); err != nil {
		return fmt.Errorf("schedule sweep %q: %w", s.cfg.CronSchedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runSweep() {
	s.logger.Info("running sweep")
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()

	result, err := s.sweeper.Run(ctx)
	if err != nil {
		s.logger.Error("sweep failed", zap.Error(err))
		return
	}
	s.logger.Info("sweep completed",
		zap.Int("inventory_changed", result.InventoryChanged),
		zap.Int("recommendations_expired", result.RecommendationsExpired),
		zap.Int("alerts_deactivated", result.AlertsDeactivated),
		zap.Int("policies_expired", result.PoliciesExpired),
	)
}
