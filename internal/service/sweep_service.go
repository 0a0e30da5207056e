package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"smart-agriculture/internal/clock"
	"smart-agriculture/internal/logger"
	"smart-agriculture/internal/metrics"
	"smart-agriculture/internal/model"
	"smart-agriculture/internal/repository"
)

// SweepResult counts the records touched by one sweep.
type SweepResult struct {
	InventoryChecked       int `json:"inventory_checked"`
	InventoryChanged       int `json:"inventory_changed"`
	RecommendationsExpired int `json:"recommendations_expired"`
	AlertsDeactivated      int `json:"alerts_deactivated"`
	PoliciesExpired        int `json:"policies_expired"`
}

// SweepService applies the time-driven transitions that no request triggers:
// stock lots that expired or became infested, recommendations past their validity,
// alerts past their expiry date and policies that ran out.
type SweepService struct {
	records    *Records
	monitoring *repository.MonitoringRepository
	clock      clock.Clock
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewSweepService(records *Records, monitoring *repository.MonitoringRepository, clk clock.Clock, m *metrics.Metrics, log *zap.Logger) *SweepService {
	return &SweepService{
		records:    records,
		monitoring: monitoring,
		clock:      clk,
		metrics:    m,
		logger:     logger.Named(log, "sweep"),
	}
}

// Run performs one sweep. A record that fails to save is logged and skipped; the
// failures are returned together once every record has been visited.
func (s *SweepService) Run(ctx context.Context) (SweepResult, error) {
	start := time.Now()
	now := s.clock.Now()
	var result SweepResult
	var errs error

	lots, err := s.monitoring.ActiveInventory(ctx)
	if err != nil {
		return result, fmt.Errorf("load active inventory: %w", err)
	}
	for i := range lots {
		lot := &lots[i]
		before := lot.Status
		result.InventoryChecked++
		if err := s.records.Inventory.Update(ctx, lot); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if lot.Status != before {
			result.InventoryChanged++
			s.logger.Info("inventory status changed",
				zap.String("id", lot.ID),
				zap.String("from", string(before)),
				zap.String("to", string(lot.Status)),
			)
		}
	}

	recs, err := s.monitoring.OverdueRecommendations(ctx, now)
	if err != nil {
		return result, multierr.Append(errs, fmt.Errorf("load overdue recommendations: %w", err))
	}
	for i := range recs {
		rec := &recs[i]
		rec.MarkAsExpired(now)
		if err := s.records.Recommendations.Update(ctx, rec); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		result.RecommendationsExpired++
	}

	alerts, err := s.monitoring.ExpiredAlerts(ctx, now)
	if err != nil {
		return result, multierr.Append(errs, fmt.Errorf("load expired alerts: %w", err))
	}
	for i := range alerts {
		alert := &alerts[i]
		if !alert.CanDeactivate(now) {
			continue
		}
		alert.Deactivate(now)
		if err := s.records.Alerts.Update(ctx, alert); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		result.AlertsDeactivated++
	}

	policies, err := s.monitoring.ExpiredPolicies(ctx, now)
	if err != nil {
		return result, multierr.Append(errs, fmt.Errorf("load expired policies: %w", err))
	}
	for i := range policies {
		policy := &policies[i]
		if err := s.records.Policies.Update(ctx, policy); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if policy.Status == model.PolicyExpired {
			result.PoliciesExpired++
		}
	}

	elapsed := time.Since(start)
	s.metrics.RecordSweep(map[string]int{
		"inventory_changed":       result.InventoryChanged,
		"recommendations_expired": result.RecommendationsExpired,
		"alerts_deactivated":      result.AlertsDeactivated,
		"policies_expired":        result.PoliciesExpired,
	}, elapsed)

	s.logger.Info("sweep finished",
		zap.Int("inventory_checked", result.InventoryChecked),
		zap.Int("inventory_changed", result.InventoryChanged),
		zap.Int("recommendations_expired", result.RecommendationsExpired),
		zap.Int("alerts_deactivated", result.AlertsDeactivated),
		zap.Int("policies_expired", result.PoliciesExpired),
		zap.Int("failures", len(multierr.Errors(errs))),
		zap.Duration("elapsed", elapsed),
	)
	return result, errs
}
