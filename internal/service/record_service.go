package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"smart-agriculture/internal/logger"
	"smart-agriculture/internal/metrics"
	"smart-agriculture/internal/model"
	"smart-agriculture/internal/repository"
	"smart-agriculture/internal/validation"
)

// ListFilter narrows a record listing. Equals maps column names to values.
type ListFilter struct {
	Equals map[string]string
	Limit  int
	Offset int
}

func (f ListFilter) scopes() []repository.Scope {
	scopes := make([]repository.Scope, 0, len(f.Equals)+1)
	for column, value := range f.Equals {
		scopes = append(scopes, repository.Eq(column, value))
	}
	return append(scopes, repository.Page(f.Limit, f.Offset))
}

// RecordService exposes the write path of one entity kind and records its outcome.
type RecordService[T any, PT interface {
	*T
	model.Entity
}] struct {
	store   *repository.Store[T, PT]
	metrics *metrics.Metrics
	logger  *zap.Logger
	hooks   []func(PT)
}

func NewRecordService[T any, PT interface {
	*T
	model.Entity
}](store *repository.Store[T, PT], m *metrics.Metrics, log *zap.Logger) *RecordService[T, PT] {
	return &RecordService[T, PT]{
		store:   store,
		metrics: m,
		logger:  logger.Named(log, store.Table()),
	}
}

// OnWrite registers fn to run after every successful create, update or delete.
func (s *RecordService[T, PT]) OnWrite(fn func(PT)) {
	s.hooks = append(s.hooks, fn)
}

func (s *RecordService[T, PT]) Table() string { return s.store.Table() }

func (s *RecordService[T, PT]) Create(ctx context.Context, rec PT) error {
	if err := s.store.Create(ctx, rec); err != nil {
		s.rejected("create", err)
		return err
	}
	s.written("create", rec)
	return nil
}

func (s *RecordService[T, PT]) Update(ctx context.Context, rec PT) error {
	if err := s.store.Update(ctx, rec); err != nil {
		s.rejected("update", err)
		return err
	}
	s.written("update", rec)
	return nil
}

func (s *RecordService[T, PT]) Get(ctx context.Context, id string) (PT, error) {
	return s.store.Get(ctx, id)
}

func (s *RecordService[T, PT]) Delete(ctx context.Context, id string) error {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		s.rejected("delete", err)
		return err
	}
	s.written("delete", rec)
	return nil
}

func (s *RecordService[T, PT]) List(ctx context.Context, filter ListFilter) ([]T, error) {
	return s.store.List(ctx, filter.scopes()...)
}

func (s *RecordService[T, PT]) written(op string, rec PT) {
	s.metrics.RecordWrite(s.store.Table(), op)
	for _, fn := range s.hooks {
		fn(rec)
	}
}

func (s *RecordService[T, PT]) rejected(op string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		return
	}
	reason := FailureReason(err)
	s.metrics.RecordWriteFailure(s.store.Table(), reason)
	s.logger.Warn("write rejected",
		zap.String("operation", op),
		zap.String("reason", reason),
		zap.Error(err),
	)
}

// FailureReason classifies a write error for metrics and logs.
func FailureReason(err error) string {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return metrics.ReasonValidation
	case errors.Is(err, model.ErrConservation):
		return metrics.ReasonConservation
	default:
		return metrics.ReasonStorage
	}
}
