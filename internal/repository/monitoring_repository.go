package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"smart-agriculture/internal/model"
)

// MonitoringRepository answers the threshold queries behind dashboards and the sweep.
type MonitoringRepository struct {
	db *gorm.DB
}

func NewMonitoringRepository(db *gorm.DB) *MonitoringRepository {
	return &MonitoringRepository{db: db}
}

// ActiveInventory returns every AVAILABLE lot.
func (r *MonitoringRepository) ActiveInventory(ctx context.Context) ([]model.Inventory, error) {
	var lots []model.Inventory
	err := r.db.WithContext(ctx).
		Where("status = ?", model.InventoryAvailable).
		Find(&lots).Error
	return lots, err
}

// ExpiringInventory returns AVAILABLE lots expiring within the window.
func (r *MonitoringRepository) ExpiringInventory(ctx context.Context, now time.Time, within time.Duration) ([]model.Inventory, error) {
	var lots []model.Inventory
	err := r.db.WithContext(ctx).
		Where("status = ? AND expiry_date > ? AND expiry_date <= ?", model.InventoryAvailable, now, now.Add(within)).
		Order("expiry_date ASC").
		Find(&lots).Error
	return lots, err
}

// LowStockInventory returns lots whose availability fell to the minimum stock level.
func (r *MonitoringRepository) LowStockInventory(ctx context.Context) ([]model.Inventory, error) {
	var lots []model.Inventory
	err := r.db.WithContext(ctx).
		Where("minimum_stock_level IS NOT NULL AND available_quantity <= minimum_stock_level").
		Find(&lots).Error
	return lots, err
}

// ActiveAlerts returns alerts that are active and not yet expired, most severe first.
func (r *MonitoringRepository) ActiveAlerts(ctx context.Context, now time.Time) ([]model.FoodSecurityAlert, error) {
	var alerts []model.FoodSecurityAlert
	err := r.db.WithContext(ctx).
		Where("active = ? AND (expiry_date IS NULL OR expiry_date >= ?)", true, now).
		Order("severity_score DESC").
		Find(&alerts).Error
	return alerts, err
}

// ExpiredAlerts returns alerts still flagged active after their expiry date.
func (r *MonitoringRepository) ExpiredAlerts(ctx context.Context, now time.Time) ([]model.FoodSecurityAlert, error) {
	var alerts []model.FoodSecurityAlert
	err := r.db.WithContext(ctx).
		Where("active = ? AND expiry_date < ?", true, now).
		Find(&alerts).Error
	return alerts, err
}

// OverdueRecommendations returns ACTIVE recommendations past their validity.
func (r *MonitoringRepository) OverdueRecommendations(ctx context.Context, now time.Time) ([]model.ResourceRecommendation, error) {
	var recs []model.ResourceRecommendation
	err := r.db.WithContext(ctx).
		Where("status = ? AND valid_until < ?", model.RecActive, now).
		Find(&recs).Error
	return recs, err
}

// ExpiredPolicies returns ACTIVE policies whose expiry day is over.
func (r *MonitoringRepository) ExpiredPolicies(ctx context.Context, now time.Time) ([]model.PolicyData, error) {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	var policies []model.PolicyData
	err := r.db.WithContext(ctx).
		Where("status = ? AND expiry_date < ?", model.PolicyActive, today).
		Find(&policies).Error
	return policies, err
}

// LatestMarketPrice returns the most recent price observation for a crop.
func (r *MonitoringRepository) LatestMarketPrice(ctx context.Context, cropID string) (*model.MarketPrice, error) {
	var price model.MarketPrice
	err := r.db.WithContext(ctx).
		Where("crop_id = ?", cropID).
		Order("price_date DESC").
		Order("created_at DESC").
		First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("market price for crop %s: %w", cropID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &price, nil
}
