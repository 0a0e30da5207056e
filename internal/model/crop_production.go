package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionStatus is the stage of a growing cycle.
type ProductionStatus string

const (
	ProductionPlanned   ProductionStatus = "PLANNED"
	ProductionPlanted   ProductionStatus = "PLANTED"
	ProductionGrowing   ProductionStatus = "GROWING"
	ProductionHarvested ProductionStatus = "HARVESTED"
	ProductionSold      ProductionStatus = "SOLD"
)

// FarmingMethod is the cultivation practice.
type FarmingMethod string

const (
	MethodOrganic      FarmingMethod = "ORGANIC"
	MethodConventional FarmingMethod = "CONVENTIONAL"
	MethodIntegrated   FarmingMethod = "INTEGRATED"
)

// CropProduction is one growing cycle of a crop on a farm.
type CropProduction struct {
	Base

	FarmID              string              `gorm:"size:64;index" json:"farm_id" validate:"required,max=64"`
	CropID              string              `gorm:"size:64;index" json:"crop_id" validate:"required,max=64"`
	Season              Season              `gorm:"size:20" json:"season" validate:"omitempty,oneof=SEASON_A SEASON_B SEASON_C OFF_SEASON"`
	FarmingMethod       FarmingMethod       `gorm:"size:20" json:"farming_method" validate:"omitempty,oneof=ORGANIC CONVENTIONAL INTEGRATED"`
	Status              ProductionStatus    `gorm:"size:20;index" json:"status" validate:"omitempty,oneof=PLANNED PLANTED GROWING HARVESTED SOLD"`
	AreaPlanted         decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"area_planted" validate:"gte=0"`
	ExpectedYield       decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"expected_yield" validate:"omitempty,gte=0"`
	ActualYield         decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"actual_yield" validate:"omitempty,gte=0"`
	TotalProduction     decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"total_production"`
	PlantingDate        *time.Time          `json:"planting_date,omitempty"`
	ExpectedHarvestDate *time.Time          `json:"expected_harvest_date,omitempty"`
	ActualHarvestDate   *time.Time          `json:"actual_harvest_date,omitempty"`
	Notes               string              `gorm:"type:text" json:"notes,omitempty"`
}

func (CropProduction) TableName() string { return "crop_productions" }

func (CropProduction) IDPrefix() string { return "CP" }

func (p *CropProduction) Initialize(time.Time, Generator) {
	if p.FarmingMethod == "" {
		p.FarmingMethod = MethodConventional
	}
	if p.Status == "" {
		p.Status = ProductionPlanned
	}
}

// Recompute derives total production from the actual yield, or from the expected
// yield while nothing better is known.
func (p *CropProduction) Recompute(time.Time) error {
	switch {
	case p.ActualYield.Valid:
		p.TotalProduction = some(round2(p.ActualYield.Decimal.Mul(p.AreaPlanted)))
	case p.ExpectedYield.Valid && !p.TotalProduction.Valid:
		p.TotalProduction = some(round2(p.ExpectedYield.Decimal.Mul(p.AreaPlanted)))
	}
	return nil
}

func (p *CropProduction) Harvested() bool {
	return p.Status == ProductionHarvested || p.Status == ProductionSold
}

func (p *CropProduction) Active() bool {
	return p.Status == ProductionPlanted || p.Status == ProductionGrowing
}

func (p *CropProduction) Overdue(now time.Time) bool {
	return p.ExpectedHarvestDate != nil && now.After(*p.ExpectedHarvestDate) && !p.Harvested()
}

// YieldEfficiency is actual / expected yield × 100.
func (p *CropProduction) YieldEfficiency() (decimal.Decimal, bool) {
	if !p.ActualYield.Valid || !p.ExpectedYield.Valid {
		return decimal.Zero, false
	}
	return percentOf(p.ActualYield.Decimal, p.ExpectedYield.Decimal)
}

func (p *CropProduction) DaysToHarvest(now time.Time) (int, bool) {
	if p.ExpectedHarvestDate == nil {
		return 0, false
	}
	return wholeDaysBetween(now, *p.ExpectedHarvestDate), true
}

func (p *CropProduction) DaysSincePlanting(now time.Time) (int, bool) {
	if p.PlantingDate == nil {
		return 0, false
	}
	return wholeDaysBetween(*p.PlantingDate, now), true
}
