package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// IrrigationMethod is how water is delivered.
type IrrigationMethod string

const (
	IrrigationSprinkler IrrigationMethod = "SPRINKLER"
	IrrigationDrip      IrrigationMethod = "DRIP"
	IrrigationFlood     IrrigationMethod = "FLOOD"
	IrrigationFurrow    IrrigationMethod = "FURROW"
	IrrigationManual    IrrigationMethod = "MANUAL"
)

// WaterSource is where irrigation water is drawn from.
type WaterSource string

const (
	WaterWell      WaterSource = "WELL"
	WaterRiver     WaterSource = "RIVER"
	WaterLake      WaterSource = "LAKE"
	WaterRainwater WaterSource = "RAINWATER"
	WaterMunicipal WaterSource = "MUNICIPAL"
)

// EfficiencyLevel bands water efficiency percentages.
type EfficiencyLevel string

const (
	EfficiencyVeryLow  EfficiencyLevel = "VERY_LOW"
	EfficiencyLow      EfficiencyLevel = "LOW"
	EfficiencyMedium   EfficiencyLevel = "MEDIUM"
	EfficiencyHigh     EfficiencyLevel = "HIGH"
	EfficiencyVeryHigh EfficiencyLevel = "VERY_HIGH"
)

// IrrigationData represents one irrigation event on a farm.
type IrrigationData struct {
	Base

	// Composite indexes serve the per-farm period analytics.
	FarmID           string     `gorm:"size:64;not null;index:idx_irrigation_farm_time,priority:1" json:"farm_id" validate:"required,max=64"`
	CropProductionID string     `gorm:"size:64" json:"crop_production_id,omitempty" validate:"max=64"`
	Sector           string     `gorm:"size:100;index:idx_irrigation_farm_time,priority:3" json:"sector,omitempty" validate:"max=100"`
	IrrigationDate   time.Time  `gorm:"not null;index:idx_irrigation_farm_time,priority:2" json:"irrigation_date" validate:"required"`
	EndTime          *time.Time `json:"end_time,omitempty"`
	Duration         int        `json:"duration"` // minutes

	WaterAmount   decimal.Decimal     `gorm:"type:decimal(18,2);not null" json:"water_amount" validate:"gt=0"` // liters
	PlannedAmount decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"planned_amount" validate:"omitempty,gte=0"`
	Method        IrrigationMethod    `gorm:"size:20" json:"irrigation_method" validate:"omitempty,oneof=SPRINKLER DRIP FLOOD FURROW MANUAL"`
	WaterSource   WaterSource         `gorm:"size:20" json:"water_source" validate:"omitempty,oneof=WELL RIVER LAKE RAINWATER MUNICIPAL"`
	WaterCost     decimal.NullDecimal `gorm:"type:decimal(18,4)" json:"water_cost" validate:"omitempty,gte=0"` // per liter
	TotalCost     decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"total_cost"`

	SoilMoistureBefore decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"soil_moisture_before" validate:"omitempty,gte=0,lte=100"`
	SoilMoistureAfter  decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"soil_moisture_after" validate:"omitempty,gte=0,lte=100"`
	FertilizerApplied  bool                `json:"fertilizer_applied"`
	OperatorName       string              `gorm:"size:100" json:"operator_name,omitempty" validate:"max=100"`
	Notes              string              `gorm:"type:text" json:"notes,omitempty"`
}

func (IrrigationData) TableName() string { return "irrigation_data" }

func (IrrigationData) IDPrefix() string { return "IR" }

// Recompute derives the duration from the event window when it was not recorded,
// and the total water cost.
func (d *IrrigationData) Recompute(time.Time) error {
	if d.Duration == 0 && d.EndTime != nil && !d.IrrigationDate.IsZero() {
		d.Duration = int(d.EndTime.Sub(d.IrrigationDate).Minutes())
	}
	if d.WaterCost.Valid {
		d.TotalCost = some(round2(d.WaterCost.Decimal.Mul(d.WaterAmount)))
	}
	return nil
}

func (d *IrrigationData) MoistureIncrease() (decimal.Decimal, bool) {
	if !d.SoilMoistureBefore.Valid || !d.SoilMoistureAfter.Valid {
		return decimal.Zero, false
	}
	return d.SoilMoistureAfter.Decimal.Sub(d.SoilMoistureBefore.Decimal), true
}

// WaterEfficiency is moisture gained per liter, at 4 decimals.
func (d *IrrigationData) WaterEfficiency() (decimal.Decimal, bool) {
	inc, ok := d.MoistureIncrease()
	if !ok || !d.WaterAmount.IsPositive() {
		return decimal.Zero, false
	}
	return inc.Div(d.WaterAmount).Round(4), true
}

func (d *IrrigationData) EfficiencyLevel() (EfficiencyLevel, bool) {
	eff, ok := d.WaterEfficiency()
	if !ok {
		return "", false
	}
	pct, _ := eff.Mul(hundred).Float64()
	switch {
	case pct < 40:
		return EfficiencyVeryLow, true
	case pct < 60:
		return EfficiencyLow, true
	case pct < 75:
		return EfficiencyMedium, true
	case pct < 85:
		return EfficiencyHigh, true
	default:
		return EfficiencyVeryHigh, true
	}
}

// DeliveryRatio is delivered / planned water, at 4 decimals.
func (d *IrrigationData) DeliveryRatio() (decimal.Decimal, bool) {
	if !d.PlannedAmount.Valid || !d.PlannedAmount.Decimal.IsPositive() {
		return decimal.Zero, false
	}
	return d.WaterAmount.Div(d.PlannedAmount.Decimal).Round(4), true
}

func (d *IrrigationData) CostPerLiter() (decimal.Decimal, bool) {
	if !d.TotalCost.Valid || !d.WaterAmount.IsPositive() {
		return decimal.Zero, false
	}
	return d.TotalCost.Decimal.Div(d.WaterAmount).Round(4), true
}

func (d *IrrigationData) ExpensiveIrrigation() bool {
	return d.TotalCost.Valid && d.TotalCost.Decimal.GreaterThan(decimal.NewFromInt(1000))
}

func (d *IrrigationData) HighWaterUsage() bool {
	return d.WaterAmount.GreaterThan(decimal.NewFromInt(10000))
}

func (d *IrrigationData) LowEfficiency() bool {
	level, ok := d.EfficiencyLevel()
	return ok && (level == EfficiencyVeryLow || level == EfficiencyLow)
}

func (d *IrrigationData) NeedsOptimization() bool {
	return d.LowEfficiency() || d.ExpensiveIrrigation() || d.HighWaterUsage()
}

func (d *IrrigationData) DurationFormatted() string {
	if d.Duration == 0 {
		return "Not specified"
	}
	hours, minutes := d.Duration/60, d.Duration%60
	if hours > 0 {
		return fmt.Sprintf("%dh %02dm", hours, minutes)
	}
	return fmt.Sprintf("%d minutes", minutes)
}
