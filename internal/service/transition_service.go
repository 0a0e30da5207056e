package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"smart-agriculture/internal/clock"
	"smart-agriculture/internal/logger"
	"smart-agriculture/internal/metrics"
	"smart-agriculture/internal/model"
)

// ErrUnknownAction is returned for an action name the entity does not support.
var ErrUnknownAction = errors.New("unknown action")

// TransitionRequest carries the optional inputs of a transition.
type TransitionRequest struct {
	Reason       string           `json:"reason"`
	Actor        string           `json:"actor"`
	Notes        string           `json:"notes"`
	Days         int              `json:"days"`
	Rating       int              `json:"rating"`
	SupersededBy string           `json:"superseded_by"`
	Value        *decimal.Decimal `json:"value"`
	At           *time.Time       `json:"at"`
}

// TransitionResult reports whether the guarded transition changed the record.
type TransitionResult struct {
	Applied bool        `json:"applied"`
	Record  interface{} `json:"record"`
}

// action applies a transition and reports whether its guard allowed it.
type action[PT any] func(rec PT, req TransitionRequest, now time.Time) bool

var transactionActions = map[string]action[*model.Transaction]{
	"confirm": func(t *model.Transaction, _ TransitionRequest, _ time.Time) bool {
		ok := t.CanConfirm()
		t.Confirm()
		return ok
	},
	"deliver": func(t *model.Transaction, _ TransitionRequest, now time.Time) bool {
		ok := t.CanDeliver()
		t.Deliver(now)
		return ok
	},
	"pay": func(t *model.Transaction, _ TransitionRequest, now time.Time) bool {
		ok := t.CanMarkAsPaid()
		t.MarkAsPaid(now)
		return ok
	},
	"cancel": func(t *model.Transaction, req TransitionRequest, _ time.Time) bool {
		ok := t.CanCancel()
		t.Cancel(req.Reason)
		return ok
	},
	"dispute": func(t *model.Transaction, req TransitionRequest, _ time.Time) bool {
		ok := t.CanDispute()
		t.Dispute(req.Reason)
		return ok
	},
}

var alertActions = map[string]action[*model.FoodSecurityAlert]{
	"escalate": func(a *model.FoodSecurityAlert, _ TransitionRequest, now time.Time) bool {
		ok := a.CanEscalate(now)
		a.Escalate(now)
		return ok
	},
	"start": func(a *model.FoodSecurityAlert, _ TransitionRequest, _ time.Time) bool {
		ok := a.CanMarkInProgress()
		a.MarkInProgress()
		return ok
	},
	"resolve": func(a *model.FoodSecurityAlert, _ TransitionRequest, now time.Time) bool {
		ok := a.CanResolve(now)
		a.MarkResolved(now)
		return ok
	},
	"deactivate": func(a *model.FoodSecurityAlert, _ TransitionRequest, now time.Time) bool {
		ok := a.CanDeactivate(now)
		a.Deactivate(now)
		return ok
	},
	"reactivate": func(a *model.FoodSecurityAlert, _ TransitionRequest, now time.Time) bool {
		ok := a.CanReactivate(now)
		a.Reactivate(now)
		return ok
	},
	"extend": func(a *model.FoodSecurityAlert, req TransitionRequest, _ time.Time) bool {
		ok := a.CanExtend(req.Days)
		a.ExtendExpiry(req.Days)
		return ok
	},
}

var predictionActions = map[string]action[*model.ProductionPrediction]{
	"validate": func(p *model.ProductionPrediction, req TransitionRequest, now time.Time) bool {
		ok := p.CanValidate()
		p.Validate(req.Actor, now)
		return ok
	},
	"reject": func(p *model.ProductionPrediction, req TransitionRequest, now time.Time) bool {
		ok := p.CanValidate()
		p.Reject(req.Actor, now)
		return ok
	},
	"publish": func(p *model.ProductionPrediction, _ TransitionRequest, now time.Time) bool {
		ok := p.CanPublish()
		p.Publish(now)
		return ok
	},
	"unpublish": func(p *model.ProductionPrediction, _ TransitionRequest, _ time.Time) bool {
		ok := p.CanUnpublish()
		p.Unpublish()
		return ok
	},
	"record-actual": func(p *model.ProductionPrediction, req TransitionRequest, _ time.Time) bool {
		if req.Value == nil || req.Value.IsNegative() {
			return false
		}
		p.RecordActual(*req.Value)
		return true
	},
}

var recommendationActions = map[string]action[*model.ResourceRecommendation]{
	"implement": func(r *model.ResourceRecommendation, req TransitionRequest, now time.Time) bool {
		ok := r.CanImplement(now)
		r.Implement(req.Notes, now)
		return ok
	},
	"reject": func(r *model.ResourceRecommendation, req TransitionRequest, _ time.Time) bool {
		ok := r.CanReject()
		r.Reject(req.Reason)
		return ok
	},
	"supersede": func(r *model.ResourceRecommendation, req TransitionRequest, _ time.Time) bool {
		ok := r.CanSupersede() && req.SupersededBy != ""
		if ok {
			r.Supersede(req.SupersededBy)
		}
		return ok
	},
	"expire": func(r *model.ResourceRecommendation, _ TransitionRequest, now time.Time) bool {
		ok := r.IsOverdue(now)
		r.MarkAsExpired(now)
		return ok
	},
	"rate": func(r *model.ResourceRecommendation, req TransitionRequest, _ time.Time) bool {
		ok := r.CanRate(req.Rating)
		r.RateEffectiveness(req.Rating)
		return ok
	},
	"record-cost": func(r *model.ResourceRecommendation, req TransitionRequest, _ time.Time) bool {
		if req.Value == nil || req.Value.IsNegative() {
			return false
		}
		r.UpdateActualCost(*req.Value)
		return true
	},
	"schedule-follow-up": func(r *model.ResourceRecommendation, req TransitionRequest, _ time.Time) bool {
		if req.At == nil {
			return false
		}
		r.ScheduleFollowUp(*req.At)
		return true
	},
	"complete-follow-up": func(r *model.ResourceRecommendation, req TransitionRequest, now time.Time) bool {
		ok := r.CanCompleteFollowUp()
		r.CompleteFollowUp(req.Notes, now)
		return ok
	},
}

// TransitionService applies guarded state transitions and persists the ones that
// took effect through the regular write path.
type TransitionService struct {
	records *Records
	clock   clock.Clock
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewTransitionService(records *Records, clk clock.Clock, m *metrics.Metrics, log *zap.Logger) *TransitionService {
	return &TransitionService{
		records: records,
		clock:   clk,
		metrics: m,
		logger:  logger.Named(log, "transitions"),
	}
}

func (s *TransitionService) Transaction(ctx context.Context, id, name string, req TransitionRequest) (*TransitionResult, error) {
	return runTransition(ctx, s, s.records.Transactions, transactionActions, id, name, req)
}

func (s *TransitionService) Alert(ctx context.Context, id, name string, req TransitionRequest) (*TransitionResult, error) {
	return runTransition(ctx, s, s.records.Alerts, alertActions, id, name, req)
}

func (s *TransitionService) Prediction(ctx context.Context, id, name string, req TransitionRequest) (*TransitionResult, error) {
	return runTransition(ctx, s, s.records.Predictions, predictionActions, id, name, req)
}

func (s *TransitionService) Recommendation(ctx context.Context, id, name string, req TransitionRequest) (*TransitionResult, error) {
	return runTransition(ctx, s, s.records.Recommendations, recommendationActions, id, name, req)
}

// Actions lists the transition names supported by each entity route.
func Actions() map[string][]string {
	return map[string][]string{
		"transactions":    actionNames(transactionActions),
		"alerts":          actionNames(alertActions),
		"predictions":     actionNames(predictionActions),
		"recommendations": actionNames(recommendationActions),
	}
}

func actionNames[PT any](actions map[string]action[PT]) []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runTransition[T any, PT interface {
	*T
	model.Entity
}](ctx context.Context, s *TransitionService, records *RecordService[T, PT], actions map[string]action[PT], id, name string, req TransitionRequest) (*TransitionResult, error) {
	apply, ok := actions[name]
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", records.Table(), name, ErrUnknownAction)
	}

	rec, err := records.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applied := apply(rec, req, s.clock.Now())
	if applied {
		if err := records.Update(ctx, rec); err != nil {
			return nil, err
		}
	}

	s.metrics.RecordTransition(records.Table(), name, applied)
	s.logger.Debug("transition requested",
		zap.String("table", records.Table()),
		zap.String("id", id),
		zap.String("action", name),
		zap.Bool("applied", applied),
	)
	return &TransitionResult{Applied: applied, Record: rec}, nil
}
