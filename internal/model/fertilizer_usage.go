package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FertilizerType is the kind of fertilizer applied.
type FertilizerType string

const (
	FertilizerOrganic        FertilizerType = "ORGANIC"
	FertilizerNPK            FertilizerType = "NPK"
	FertilizerNitrogen       FertilizerType = "NITROGEN"
	FertilizerPhosphate      FertilizerType = "PHOSPHATE"
	FertilizerPotash         FertilizerType = "POTASH"
	FertilizerMicronutrients FertilizerType = "MICRONUTRIENTS"
)

// DefaultComposition is the nominal nutrient composition of the type.
func (f FertilizerType) DefaultComposition() string {
	switch f {
	case FertilizerNPK:
		return "N-P-K 17-17-17"
	case FertilizerNitrogen:
		return "Urea 46% N"
	case FertilizerPhosphate:
		return "DAP 18-46-0"
	case FertilizerPotash:
		return "MOP 60% K2O"
	case FertilizerOrganic:
		return "Compost / manure"
	case FertilizerMicronutrients:
		return "Zn, B, Fe, Mn blend"
	}
	return "Unknown"
}

// FertilizerUnit is the unit a quantity is recorded in.
type FertilizerUnit string

const (
	UnitKG     FertilizerUnit = "KG"
	UnitTonnes FertilizerUnit = "TONNES"
	UnitLiters FertilizerUnit = "LITERS"
	UnitBags   FertilizerUnit = "BAGS"
)

// KilogramFactor converts one unit to kilograms; a bag is 50 kg and a liter 1.2 kg.
func (u FertilizerUnit) KilogramFactor() decimal.Decimal {
	switch u {
	case UnitTonnes:
		return decimal.NewFromInt(1000)
	case UnitBags:
		return decimal.NewFromInt(50)
	case UnitLiters:
		return decimal.NewFromFloat(1.2)
	}
	return decimal.NewFromInt(1)
}

// FertilizerUsage records one fertilizer application.
type FertilizerUsage struct {
	Base

	FarmID            string              `gorm:"size:64;index" json:"farm_id" validate:"required,max=64"`
	CropProductionID  string              `gorm:"size:64;index" json:"crop_production_id,omitempty" validate:"max=64"`
	FertilizerType    FertilizerType      `gorm:"size:20" json:"fertilizer_type" validate:"required,oneof=ORGANIC NPK NITROGEN PHOSPHATE POTASH MICRONUTRIENTS"`
	BrandName         string              `gorm:"size:100" json:"brand_name,omitempty" validate:"max=100"`
	Composition       string              `gorm:"size:100" json:"composition,omitempty" validate:"max=100"`
	Quantity          decimal.Decimal     `gorm:"type:decimal(18,2);not null" json:"quantity" validate:"gt=0"`
	Unit              FertilizerUnit      `gorm:"size:10" json:"unit" validate:"omitempty,oneof=KG TONNES LITERS BAGS"`
	ApplicationMethod string              `gorm:"size:20" json:"application_method,omitempty" validate:"omitempty,oneof=BROADCAST BAND FOLIAR FERTIGATION SPOT"`
	GrowthStage       string              `gorm:"size:20" json:"growth_stage,omitempty" validate:"omitempty,oneof=PRE_PLANTING PLANTING VEGETATIVE FLOWERING FRUITING MATURITY POST_HARVEST"`
	CostPerUnit       decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"cost_per_unit" validate:"omitempty,gte=0"`
	TotalCost         decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"total_cost"`
	ApplicationDate   *time.Time          `json:"application_date,omitempty"`
	ExpiryDate        *time.Time          `json:"expiry_date,omitempty"`
	Effectiveness     *int                `json:"effectiveness,omitempty" validate:"omitempty,min=1,max=5"`
}

func (FertilizerUsage) TableName() string { return "fertilizer_usages" }

func (FertilizerUsage) IDPrefix() string { return "FU" }

func (f *FertilizerUsage) Initialize(now time.Time, _ Generator) {
	if f.Unit == "" {
		f.Unit = UnitKG
	}
	if f.ApplicationDate == nil {
		f.ApplicationDate = timePtr(now)
	}
	if f.Composition == "" {
		f.Composition = f.FertilizerType.DefaultComposition()
	}
}

// Recompute derives the total cost of the application.
func (f *FertilizerUsage) Recompute(time.Time) error {
	if f.CostPerUnit.Valid {
		f.TotalCost = some(round2(f.CostPerUnit.Decimal.Mul(f.Quantity)))
	}
	return nil
}

// CostPerKg normalizes the total cost by the applied mass.
func (f *FertilizerUsage) CostPerKg() (decimal.Decimal, bool) {
	if !f.TotalCost.Valid {
		return decimal.Zero, false
	}
	kg := f.Quantity.Mul(f.Unit.KilogramFactor())
	if !kg.IsPositive() {
		return decimal.Zero, false
	}
	return round2(f.TotalCost.Decimal.Div(kg)), true
}

func (f *FertilizerUsage) Expired(now time.Time) bool {
	return f.ExpiryDate != nil && now.After(*f.ExpiryDate)
}

func (f *FertilizerUsage) ExpiringSoon(now time.Time) bool {
	return f.ExpiryDate != nil && !f.Expired(now) && f.ExpiryDate.Before(now.AddDate(0, 3, 0))
}

func (f *FertilizerUsage) HighCost() bool {
	return f.TotalCost.Valid && f.TotalCost.Decimal.GreaterThan(decimal.NewFromInt(5000))
}

func (f *FertilizerUsage) LowEffectiveness() bool {
	return f.Effectiveness != nil && *f.Effectiveness <= 2
}

func (f *FertilizerUsage) HighEffectiveness() bool {
	return f.Effectiveness != nil && *f.Effectiveness >= 4
}

func (f *FertilizerUsage) NeedsOptimization(now time.Time) bool {
	return f.HighCost() || f.LowEffectiveness() || f.Expired(now)
}
