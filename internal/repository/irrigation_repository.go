package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"smart-agriculture/internal/model"
)

// IrrigationRepository defines the read side of irrigation analytics.
type IrrigationRepository interface {
	FarmExists(ctx context.Context, farmID string) (bool, error)
	// Records returns the events of a farm in [start, end), oldest first.
	Records(ctx context.Context, farmID string, sector *string, start, end time.Time) ([]model.IrrigationData, error)
}

type irrigationRepository struct {
	db *gorm.DB
}

// NewIrrigationRepository creates a new irrigation repository
func NewIrrigationRepository(db *gorm.DB) IrrigationRepository {
	return &irrigationRepository{db: db}
}

// FarmExists checks if a farm with the given ID exists
func (r *irrigationRepository) FarmExists(ctx context.Context, farmID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Farm{}).Where("id = ?", farmID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *irrigationRepository) Records(ctx context.Context, farmID string, sector *string, start, end time.Time) ([]model.IrrigationData, error) {
	query := r.db.WithContext(ctx).
		Where("farm_id = ? AND irrigation_date >= ? AND irrigation_date < ?", farmID, start, end)

	if sector != nil {
		query = query.Where("sector = ?", *sector)
	}

	var records []model.IrrigationData
	if err := query.Order("irrigation_date ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
