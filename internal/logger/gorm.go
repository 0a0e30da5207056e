package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormAdapter routes gorm's logging through zap. Queries log at debug,
// slow queries and query errors at warn.
type GormAdapter struct {
	logger        *zap.Logger
	slowThreshold time.Duration
}

// NewGormAdapter returns a gorm logger. A zero slowThreshold disables slow query warnings.
func NewGormAdapter(logger *zap.Logger, slowThreshold time.Duration) *GormAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormAdapter{logger: logger, slowThreshold: slowThreshold}
}

// LogMode is a no-op; the zap level decides what is written.
func (a *GormAdapter) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return a
}

func (a *GormAdapter) Info(_ context.Context, msg string, data ...interface{}) {
	a.logger.Debug(fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Warn(_ context.Context, msg string, data ...interface{}) {
	a.logger.Warn(fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Error(_ context.Context, msg string, data ...interface{}) {
	a.logger.Error(fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		a.logger.Warn("query error",
			zap.String("sql", sql),
			zap.Int64("rows_affected", rows),
			zap.Int64("duration_ms", elapsed.Milliseconds()),
			zap.Error(err))
	case a.slowThreshold > 0 && elapsed > a.slowThreshold:
		a.logger.Warn("slow query",
			zap.String("sql", sql),
			zap.Int64("rows_affected", rows),
			zap.Int64("duration_ms", elapsed.Milliseconds()),
			zap.Duration("threshold", a.slowThreshold))
	default:
		a.logger.Debug("query",
			zap.String("sql", sql),
			zap.Int64("rows_affected", rows),
			zap.Int64("duration_ms", elapsed.Milliseconds()))
	}
}
