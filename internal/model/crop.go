package model

import (
	"fmt"
	"time"
)

// CropType is the botanical/commercial family of a crop.
type CropType string

const (
	CropCereals    CropType = "CEREALS"
	CropVegetables CropType = "VEGETABLES"
	CropFruits     CropType = "FRUITS"
	CropLegumes    CropType = "LEGUMES"
	CropTubers     CropType = "TUBERS"
	CropCashCrops  CropType = "CASH_CROPS"
)

// DemandLevel is the market appetite for a crop or at a market.
type DemandLevel string

const (
	DemandLow      DemandLevel = "LOW"
	DemandMedium   DemandLevel = "MEDIUM"
	DemandHigh     DemandLevel = "HIGH"
	DemandVeryHigh DemandLevel = "VERY_HIGH"
)

// Crop is a crop variety and its agronomic profile.
type Crop struct {
	Base

	Name               string      `gorm:"size:100;index" json:"name" validate:"required,max=100"`
	Variety            string      `gorm:"size:100" json:"variety,omitempty" validate:"max=100"`
	CropType           CropType    `gorm:"size:20" json:"crop_type" validate:"required,oneof=CEREALS VEGETABLES FRUITS LEGUMES TUBERS CASH_CROPS"`
	GrowingPeriodDays  *int        `json:"growing_period_days,omitempty" validate:"omitempty,gt=0"`
	MinTemperature     *float64    `json:"min_temperature,omitempty"`
	MaxTemperature     *float64    `json:"max_temperature,omitempty"`
	MinPH              *float64    `gorm:"column:min_ph" json:"min_ph,omitempty" validate:"omitempty,gte=0,lte=14"`
	MaxPH              *float64    `gorm:"column:max_ph" json:"max_ph,omitempty" validate:"omitempty,gte=0,lte=14"`
	StorageLifeDays    *int        `json:"storage_life_days,omitempty" validate:"omitempty,gte=0"`
	MarketDemand       DemandLevel `gorm:"size:20" json:"market_demand,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH VERY_HIGH"`
	NutritionalValue   string      `gorm:"type:text" json:"nutritional_value,omitempty"`
	WaterRequirementMM *float64    `json:"water_requirement_mm,omitempty" validate:"omitempty,gte=0"`
}

func (Crop) TableName() string { return "crops" }

func (Crop) IDPrefix() string { return "CR" }

func (c *Crop) Recompute(time.Time) error { return nil }

func (c *Crop) HighDemand() bool {
	return c.MarketDemand == DemandHigh || c.MarketDemand == DemandVeryHigh
}

func (c *Crop) LongStorageLife() bool {
	return c.StorageLifeDays != nil && *c.StorageLifeDays > 365
}

func (c *Crop) ShortGrowingPeriod() bool {
	return c.GrowingPeriodDays != nil && *c.GrowingPeriodDays <= 90
}

func (c *Crop) LongGrowingPeriod() bool {
	return c.GrowingPeriodDays != nil && *c.GrowingPeriodDays >= 365
}

func (c *Crop) FullName() string {
	if c.Variety == "" {
		return c.Name
	}
	return fmt.Sprintf("%s (%s)", c.Name, c.Variety)
}

func (c *Crop) GrowingPeriodFormatted() string {
	if c.GrowingPeriodDays == nil {
		return "Not specified"
	}
	d := *c.GrowingPeriodDays
	switch {
	case d >= 365:
		return fmt.Sprintf("%.1f years", float64(d)/365)
	case d >= 30:
		return fmt.Sprintf("%.1f months", float64(d)/30)
	default:
		return fmt.Sprintf("%d days", d)
	}
}

func (c *Crop) TemperatureRange() string {
	if c.MinTemperature == nil || c.MaxTemperature == nil {
		return "Not specified"
	}
	return fmt.Sprintf("%.1f°C - %.1f°C", *c.MinTemperature, *c.MaxTemperature)
}

func (c *Crop) PHRange() string {
	if c.MinPH == nil || c.MaxPH == nil {
		return "Not specified"
	}
	return fmt.Sprintf("%.1f - %.1f", *c.MinPH, *c.MaxPH)
}
