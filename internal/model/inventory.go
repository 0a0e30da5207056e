package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FacilityType is the kind of site holding a stock lot.
type FacilityType string

const (
	FacilityFarmStorage     FacilityType = "FARM_STORAGE"
	FacilityWarehouse       FacilityType = "WAREHOUSE"
	FacilitySilo            FacilityType = "SILO"
	FacilityColdStorage     FacilityType = "COLD_STORAGE"
	FacilityProcessingPlant FacilityType = "PROCESSING_PLANT"
	FacilityRetailStore     FacilityType = "RETAIL_STORE"
)

func (f FacilityType) DisplayName() string { return displayName(string(f)) }

// TemperatureControlled reports whether the facility regulates temperature.
func (f FacilityType) TemperatureControlled() bool {
	return f == FacilityColdStorage || f == FacilityProcessingPlant
}

// Commercial reports whether the facility is operated commercially.
func (f FacilityType) Commercial() bool {
	return f == FacilityWarehouse || f == FacilityProcessingPlant || f == FacilityRetailStore
}

// PackagingCondition grades packaging from POOR (1) to EXCELLENT (4).
type PackagingCondition string

const (
	PackagingExcellent PackagingCondition = "EXCELLENT"
	PackagingGood      PackagingCondition = "GOOD"
	PackagingFair      PackagingCondition = "FAIR"
	PackagingPoor      PackagingCondition = "POOR"
)

func (p PackagingCondition) Score() int {
	switch p {
	case PackagingExcellent:
		return 4
	case PackagingGood:
		return 3
	case PackagingFair:
		return 2
	case PackagingPoor:
		return 1
	}
	return 0
}

// PestStatus is the infestation state of a stock lot.
type PestStatus string

const (
	PestFree             PestStatus = "PEST_FREE"
	PestMinorInfestation PestStatus = "MINOR_INFESTATION"
	PestMajorInfestation PestStatus = "MAJOR_INFESTATION"
)

func (p PestStatus) score() int {
	switch p {
	case PestFree:
		return 4
	case PestMinorInfestation:
		return 2
	case PestMajorInfestation:
		return 1
	}
	return 0
}

// InventoryStatus is the lifecycle state of a stock lot.
type InventoryStatus string

const (
	InventoryAvailable InventoryStatus = "AVAILABLE"
	InventoryReserved  InventoryStatus = "RESERVED"
	InventoryInTransit InventoryStatus = "IN_TRANSIT"
	InventorySold      InventoryStatus = "SOLD"
	InventoryDamaged   InventoryStatus = "DAMAGED"
	InventoryExpired   InventoryStatus = "EXPIRED"
	InventoryDisposed  InventoryStatus = "DISPOSED"
)

func (s InventoryStatus) DisplayName() string { return displayName(string(s)) }

func (s InventoryStatus) Sellable() bool {
	return s == InventoryAvailable || s == InventoryReserved
}

func (s InventoryStatus) Active() bool {
	return s != InventorySold && s != InventoryDisposed
}

func (s InventoryStatus) RequiresAction() bool {
	return s == InventoryDamaged || s == InventoryExpired
}

// StrategicImportance ranks a lot for food security planning.
type StrategicImportance string

const (
	ImportanceLow      StrategicImportance = "LOW"
	ImportanceMedium   StrategicImportance = "MEDIUM"
	ImportanceHigh     StrategicImportance = "HIGH"
	ImportanceCritical StrategicImportance = "CRITICAL"
)

// InventoryAlert is a condition raised on read by ActiveAlerts.
type InventoryAlert string

const (
	AlertExpiringSoon     InventoryAlert = "EXPIRING_SOON"
	AlertLowStock         InventoryAlert = "LOW_STOCK"
	AlertHighLoss         InventoryAlert = "HIGH_LOSS"
	AlertPestDetected     InventoryAlert = "PEST_DETECTED"
	AlertQualityDegrading InventoryAlert = "QUALITY_DEGRADING"
	AlertOverstock        InventoryAlert = "OVERSTOCK"
	AlertPriceDrop        InventoryAlert = "PRICE_DROP"
)

const (
	expiringSoonDays        = 7
	highLossPercent         = 5
	highValueThreshold      = 100000
	degradationAlertPercent = 10
)

// Inventory is a stored lot of produce.
type Inventory struct {
	Base

	InventoryCode    string       `gorm:"size:30;uniqueIndex" json:"inventory_code"`
	FarmID           string       `gorm:"size:64;index" json:"farm_id" validate:"required,max=64"`
	CropID           string       `gorm:"size:64;index" json:"crop_id" validate:"required,max=64"`
	CropProductionID string       `gorm:"size:64" json:"crop_production_id,omitempty" validate:"max=64"`
	StorageLocation  string       `gorm:"size:200" json:"storage_location" validate:"required,max=200"`
	FacilityType     FacilityType `gorm:"size:30" json:"facility_type" validate:"required,oneof=FARM_STORAGE WAREHOUSE SILO COLD_STORAGE PROCESSING_PLANT RETAIL_STORE"`

	CurrentQuantity   decimal.Decimal     `gorm:"type:decimal(18,2);not null" json:"current_quantity" validate:"gte=0"`
	ReservedQuantity  decimal.Decimal     `gorm:"type:decimal(18,2);not null" json:"reserved_quantity" validate:"gte=0"`
	AvailableQuantity decimal.Decimal     `gorm:"type:decimal(18,2);not null" json:"available_quantity"`
	MinimumStockLevel decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"minimum_stock_level" validate:"omitempty,gte=0"`
	MaximumStockLevel decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"maximum_stock_level" validate:"omitempty,gte=0"`
	Unit              string              `gorm:"size:20" json:"unit" validate:"max=20"`

	QualityGrade       string              `gorm:"size:20" json:"quality_grade,omitempty" validate:"max=20"`
	PackagingCondition PackagingCondition  `gorm:"size:20" json:"packaging_condition,omitempty" validate:"omitempty,oneof=EXCELLENT GOOD FAIR POOR"`
	PestStatus         PestStatus          `gorm:"size:30" json:"pest_status,omitempty" validate:"omitempty,oneof=PEST_FREE MINOR_INFESTATION MAJOR_INFESTATION"`
	MoistureContent    decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"moisture_content" validate:"omitempty,gte=0,lte=100"`
	ShelfLifeDays      *int                `json:"shelf_life_days,omitempty" validate:"omitempty,gte=0"`
	DegradationRate    decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"degradation_rate" validate:"omitempty,gte=0"`
	LossPercentage     decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"loss_percentage" validate:"omitempty,gte=0,lte=100"`

	PurchasePricePerUnit decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"purchase_price_per_unit" validate:"omitempty,gte=0"`
	MarketValuePerUnit   decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"market_value_per_unit" validate:"omitempty,gte=0"`
	TotalMarketValue     decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"total_market_value"`
	ProfitMargin         decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"profit_margin"`
	StorageCapacity      decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"storage_capacity" validate:"omitempty,gte=0"`

	StrategicImportance StrategicImportance `gorm:"size:20" json:"strategic_importance,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	Organic             bool                `json:"organic"`
	FairTrade           bool                `json:"fair_trade"`
	LocalSourcing       bool                `json:"local_sourcing"`

	Status             InventoryStatus `gorm:"size:20;index" json:"status" validate:"omitempty,oneof=AVAILABLE RESERVED IN_TRANSIT SOLD DAMAGED EXPIRED DISPOSED"`
	StorageDate        *time.Time      `json:"storage_date,omitempty"`
	ExpiryDate         *time.Time      `gorm:"index" json:"expiry_date,omitempty"`
	NextInspectionDate *time.Time      `json:"next_inspection_date,omitempty"`
	DaysInStorage      int             `json:"days_in_storage"`
}

func (Inventory) TableName() string { return "inventories" }

func (Inventory) IDPrefix() string { return "INV" }

// Initialize applies create-only defaults.
func (i *Inventory) Initialize(now time.Time, gen Generator) {
	if i.InventoryCode == "" {
		i.InventoryCode = gen.NewCode("STOCK", now)
	}
	if i.Unit == "" {
		i.Unit = "KG"
	}
	if i.Status == "" {
		i.Status = InventoryAvailable
	}
	if i.StorageDate == nil {
		i.StorageDate = timePtr(now)
	}
	if i.ExpiryDate == nil && i.ShelfLifeDays != nil {
		i.ExpiryDate = timePtr(i.StorageDate.AddDate(0, 0, *i.ShelfLifeDays))
	}
	if i.NextInspectionDate == nil {
		i.NextInspectionDate = timePtr(now.AddDate(0, 1, 0))
	}
}

// Recompute refreshes availability, storage age, valuation and the automatic status.
// Automatic transitions only fire from AVAILABLE.
func (i *Inventory) Recompute(now time.Time) error {
	i.AvailableQuantity = decimal.Max(decimal.Zero, i.CurrentQuantity.Sub(i.ReservedQuantity))

	if i.StorageDate != nil {
		i.DaysInStorage = wholeDaysBetween(*i.StorageDate, now)
	}

	if i.MarketValuePerUnit.Valid {
		i.TotalMarketValue = some(round2(i.MarketValuePerUnit.Decimal.Mul(i.CurrentQuantity)))
	}

	if i.PurchasePricePerUnit.Valid && i.MarketValuePerUnit.Valid {
		margin := i.MarketValuePerUnit.Decimal.Sub(i.PurchasePricePerUnit.Decimal)
		if pct, ok := percentOf(margin, i.PurchasePricePerUnit.Decimal); ok {
			i.ProfitMargin = some(pct)
		}
	}

	if i.Status == InventoryAvailable {
		switch {
		case i.ExpiryDate != nil && now.After(*i.ExpiryDate):
			i.Status = InventoryExpired
		case i.PestStatus == PestMajorInfestation:
			i.Status = InventoryDamaged
		}
	}
	return nil
}

// Reserve moves qty from available to reserved. It is a no-op when qty exceeds availability.
func (i *Inventory) Reserve(qty decimal.Decimal) bool {
	if !qty.IsPositive() || i.ReservedQuantity.Add(qty).GreaterThan(i.CurrentQuantity) {
		return false
	}
	i.ReservedQuantity = i.ReservedQuantity.Add(qty)
	i.AvailableQuantity = decimal.Max(decimal.Zero, i.CurrentQuantity.Sub(i.ReservedQuantity))
	return true
}

// Release returns qty from reserved to available. It is a no-op when qty exceeds the reservation.
func (i *Inventory) Release(qty decimal.Decimal) bool {
	if !qty.IsPositive() || qty.GreaterThan(i.ReservedQuantity) {
		return false
	}
	i.ReservedQuantity = i.ReservedQuantity.Sub(qty)
	i.AvailableQuantity = decimal.Max(decimal.Zero, i.CurrentQuantity.Sub(i.ReservedQuantity))
	return true
}

// DaysUntilExpiry is negative once the lot has expired.
func (i *Inventory) DaysUntilExpiry(now time.Time) (int, bool) {
	if i.ExpiryDate == nil {
		return 0, false
	}
	return wholeDaysBetween(now, *i.ExpiryDate), true
}

func (i *Inventory) IsExpired(now time.Time) bool {
	return i.ExpiryDate != nil && now.After(*i.ExpiryDate)
}

func (i *Inventory) ExpiringSoon(now time.Time) bool {
	days, ok := i.DaysUntilExpiry(now)
	return ok && !i.IsExpired(now) && days <= expiringSoonDays
}

func (i *Inventory) LowStock() bool {
	return i.MinimumStockLevel.Valid && i.AvailableQuantity.LessThanOrEqual(i.MinimumStockLevel.Decimal)
}

func (i *Inventory) Overstock() bool {
	return i.MaximumStockLevel.Valid && i.CurrentQuantity.GreaterThanOrEqual(i.MaximumStockLevel.Decimal)
}

func (i *Inventory) HighLoss() bool {
	return i.LossPercentage.Valid && i.LossPercentage.Decimal.GreaterThanOrEqual(decimal.NewFromInt(highLossPercent))
}

func (i *Inventory) PestDetected() bool {
	return i.PestStatus == PestMinorInfestation || i.PestStatus == PestMajorInfestation
}

func (i *Inventory) RequiresInspection(now time.Time) bool {
	return i.NextInspectionDate != nil && now.After(*i.NextInspectionDate)
}

func (i *Inventory) HighValue() bool {
	return i.TotalMarketValue.Valid && i.TotalMarketValue.Decimal.GreaterThanOrEqual(decimal.NewFromInt(highValueThreshold))
}

func (i *Inventory) Profitable() bool {
	return i.ProfitMargin.Valid && i.ProfitMargin.Decimal.IsPositive()
}

func (i *Inventory) Sustainable() bool {
	return i.Organic || i.FairTrade || i.LocalSourcing
}

// NeedsAttention is the composite signal shown on dashboards.
func (i *Inventory) NeedsAttention(now time.Time) bool {
	return i.ExpiringSoon(now) || i.LowStock() || i.HighLoss() || i.PestDetected() || i.Status.RequiresAction()
}

func (i *Inventory) qualityDegrading() bool {
	if !i.DegradationRate.Valid {
		return false
	}
	degraded := i.DegradationRate.Decimal.Mul(decimal.NewFromInt(int64(i.DaysInStorage)))
	return degraded.GreaterThanOrEqual(decimal.NewFromInt(degradationAlertPercent))
}

// ActiveAlerts lists every alert condition currently true for the lot.
func (i *Inventory) ActiveAlerts(now time.Time) []InventoryAlert {
	var alerts []InventoryAlert
	if i.ExpiringSoon(now) {
		alerts = append(alerts, AlertExpiringSoon)
	}
	if i.LowStock() {
		alerts = append(alerts, AlertLowStock)
	}
	if i.HighLoss() {
		alerts = append(alerts, AlertHighLoss)
	}
	if i.PestDetected() {
		alerts = append(alerts, AlertPestDetected)
	}
	if i.qualityDegrading() {
		alerts = append(alerts, AlertQualityDegrading)
	}
	if i.Overstock() {
		alerts = append(alerts, AlertOverstock)
	}
	if i.PurchasePricePerUnit.Valid && i.MarketValuePerUnit.Valid &&
		i.MarketValuePerUnit.Decimal.LessThan(i.PurchasePricePerUnit.Decimal) {
		alerts = append(alerts, AlertPriceDrop)
	}
	return alerts
}

// CapacityUtilization is current / capacity × 100.
func (i *Inventory) CapacityUtilization() (decimal.Decimal, bool) {
	if !i.StorageCapacity.Valid {
		return decimal.Zero, false
	}
	return percentOf(i.CurrentQuantity, i.StorageCapacity.Decimal)
}

// StorageQualityScore averages packaging, pest and moisture scores on a 1..4 scale.
func (i *Inventory) StorageQualityScore() (float64, bool) {
	total, n := 0, 0
	if s := i.PackagingCondition.Score(); s > 0 {
		total += s
		n++
	}
	if s := i.PestStatus.score(); s > 0 {
		total += s
		n++
	}
	if i.MoistureContent.Valid {
		m, _ := i.MoistureContent.Decimal.Float64()
		switch {
		case m >= 10 && m <= 15:
			total += 4
		case m <= 20:
			total += 2
		default:
			total++
		}
		n++
	}
	if n == 0 {
		return 0, false
	}
	return float64(total) / float64(n), true
}

// StorageQuality bands StorageQualityScore.
func (i *Inventory) StorageQuality() string {
	score, ok := i.StorageQualityScore()
	switch {
	case !ok:
		return "N/A"
	case score >= 3.5:
		return "Excellent"
	case score >= 2.5:
		return "Good"
	case score >= 1.5:
		return "Fair"
	default:
		return "Poor"
	}
}

// CurrentValue is the market value of the lot net of recorded losses.
func (i *Inventory) CurrentValue() (decimal.Decimal, bool) {
	if !i.MarketValuePerUnit.Valid {
		return decimal.Zero, false
	}
	value := i.CurrentQuantity.Mul(i.MarketValuePerUnit.Decimal)
	if i.LossPercentage.Valid {
		keep := decimal.NewFromInt(1).Sub(i.LossPercentage.Decimal.Div(hundred))
		value = value.Mul(keep)
	}
	return round2(value), true
}

func (i *Inventory) RemainingShelfLife(now time.Time) string {
	days, ok := i.DaysUntilExpiry(now)
	switch {
	case !ok:
		return "Unknown"
	case i.IsExpired(now):
		return "Expired"
	case days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

func (i *Inventory) FormattedQuantity() string {
	return fmt.Sprintf("%s %s", i.CurrentQuantity.StringFixed(2), i.Unit)
}

func (i *Inventory) FormattedMarketValue() string {
	if !i.TotalMarketValue.Valid {
		return "Not valued"
	}
	return "RWF " + i.TotalMarketValue.Decimal.StringFixed(2)
}

func (i *Inventory) Summary() string {
	return fmt.Sprintf("%s - %s %s (%s) - %s",
		i.InventoryCode, i.FormattedQuantity(), i.QualityGrade, i.FacilityType.DisplayName(), i.Status.DisplayName())
}
