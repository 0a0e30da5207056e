package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MarketType is the kind of market a price was observed at.
type MarketType string

const (
	MarketWholesale         MarketType = "WHOLESALE"
	MarketRetail            MarketType = "RETAIL"
	MarketFarmGate          MarketType = "FARM_GATE"
	MarketExport            MarketType = "EXPORT"
	MarketCommodityExchange MarketType = "COMMODITY_EXCHANGE"
)

// SupplyLevel is the observed supply at a market.
type SupplyLevel string

const (
	SupplyLow    SupplyLevel = "LOW"
	SupplyMedium SupplyLevel = "MEDIUM"
	SupplyHigh   SupplyLevel = "HIGH"
	SupplyExcess SupplyLevel = "EXCESS"
)

// PriceTrend is the recent direction of a price.
type PriceTrend string

const (
	TrendIncreasing PriceTrend = "INCREASING"
	TrendStable     PriceTrend = "STABLE"
	TrendDecreasing PriceTrend = "DECREASING"
)

// MarketPrice is a crop price observation.
type MarketPrice struct {
	Base

	CropID           string              `gorm:"size:64;index:idx_price_crop_date,priority:1" json:"crop_id" validate:"required,max=64"`
	MarketName       string              `gorm:"size:100" json:"market_name" validate:"required,max=100"`
	MarketType       MarketType          `gorm:"size:20" json:"market_type" validate:"required,oneof=WHOLESALE RETAIL FARM_GATE EXPORT COMMODITY_EXCHANGE"`
	Location         string              `gorm:"size:200" json:"location,omitempty" validate:"max=200"`
	PriceDate        time.Time           `gorm:"index:idx_price_crop_date,priority:2" json:"price_date"`
	PricePerKg       decimal.Decimal     `gorm:"type:decimal(18,2);not null" json:"price_per_kg" validate:"gt=0"`
	Currency         string              `gorm:"size:3" json:"currency" validate:"omitempty,len=3"`
	QualityGrade     string              `gorm:"size:20" json:"quality_grade,omitempty" validate:"max=20"`
	DemandLevel      DemandLevel         `gorm:"size:20" json:"demand_level" validate:"omitempty,oneof=LOW MEDIUM HIGH VERY_HIGH"`
	SupplyLevel      SupplyLevel         `gorm:"size:20" json:"supply_level" validate:"omitempty,oneof=LOW MEDIUM HIGH EXCESS"`
	PriceTrend       PriceTrend          `gorm:"size:20" json:"price_trend" validate:"omitempty,oneof=INCREASING STABLE DECREASING"`
	SeasonalFactor   decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"seasonal_factor" validate:"omitempty,gt=0"`
	TransportCost    decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"transport_cost" validate:"omitempty,gte=0"`
	StorageCost      decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"storage_cost" validate:"omitempty,gte=0"`
	ProcessingCost   decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"processing_cost" validate:"omitempty,gte=0"`
	DataSource       string              `gorm:"size:100" json:"data_source,omitempty" validate:"max=100"`
	ReliabilityScore int                 `json:"reliability_score" validate:"omitempty,min=1,max=5"`
}

func (MarketPrice) TableName() string { return "market_prices" }

func (MarketPrice) IDPrefix() string { return "MP" }

func (m *MarketPrice) Initialize(now time.Time, _ Generator) {
	if m.PriceDate.IsZero() {
		m.PriceDate = now
	}
	if m.Currency == "" {
		m.Currency = "RWF"
	}
	if m.DemandLevel == "" {
		m.DemandLevel = DemandMedium
	}
	if m.SupplyLevel == "" {
		m.SupplyLevel = SupplyMedium
	}
	if m.PriceTrend == "" {
		m.PriceTrend = TrendStable
	}
	if m.ReliabilityScore == 0 {
		m.ReliabilityScore = 5
	}
}

func (m *MarketPrice) Recompute(time.Time) error { return nil }

// TotalCostPerKg adds transport, storage and processing costs to the price.
func (m *MarketPrice) TotalCostPerKg() decimal.Decimal {
	return m.PricePerKg.
		Add(m.TransportCost.Decimal).
		Add(m.StorageCost.Decimal).
		Add(m.ProcessingCost.Decimal)
}

// AdjustedPrice applies the seasonal factor when one is recorded.
func (m *MarketPrice) AdjustedPrice() decimal.Decimal {
	if m.SeasonalFactor.Valid && m.SeasonalFactor.Decimal.IsPositive() {
		return round2(m.PricePerKg.Mul(m.SeasonalFactor.Decimal))
	}
	return m.PricePerKg
}

func (m *MarketPrice) HighPrice() bool {
	return m.PricePerKg.GreaterThan(decimal.NewFromInt(1000))
}

func (m *MarketPrice) LowPrice() bool {
	return m.PricePerKg.LessThan(decimal.NewFromInt(100))
}

func (m *MarketPrice) HighDemand() bool {
	return m.DemandLevel == DemandHigh || m.DemandLevel == DemandVeryHigh
}

func (m *MarketPrice) LowSupply() bool { return m.SupplyLevel == SupplyLow }

// MarketOpportunity is high demand, low supply and a rising price.
func (m *MarketPrice) MarketOpportunity() bool {
	return m.HighDemand() && m.LowSupply() && m.PriceTrend == TrendIncreasing
}

func (m *MarketPrice) ReliableData() bool { return m.ReliabilityScore >= 4 }

func (m *MarketPrice) DaysOld(now time.Time) int {
	return wholeDaysBetween(m.PriceDate, now)
}

func (m *MarketPrice) RecentPrice(now time.Time) bool {
	return now.AddDate(0, 0, -7).Before(m.PriceDate)
}

func (m *MarketPrice) OutdatedPrice(now time.Time) bool {
	return now.AddDate(0, 0, -30).After(m.PriceDate)
}

func (m *MarketPrice) PriceFormatted() string {
	return fmt.Sprintf("%s %s/kg", m.Currency, m.PricePerKg.StringFixed(2))
}
