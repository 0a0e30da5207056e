package repository

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smart-agriculture/internal/config"
	"smart-agriculture/internal/logger"
	"smart-agriculture/internal/model"
)

// Open connects to the configured database. Postgres is the production
// dialect; sqlite serves local development and tests.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.NewGormAdapter(logger.Named(log, "gorm"), cfg.SlowThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}
	return db, nil
}

// Migrate creates or updates the schema of every entity table.
func Migrate(db *gorm.DB) error {
	entities := model.All()
	tables := make([]interface{}, 0, len(entities))
	for _, e := range entities {
		tables = append(tables, e)
	}
	if err := db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
