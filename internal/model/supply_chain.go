package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Stage is a step of the post-harvest chain, in chain order.
type Stage string

const (
	StageHarvest      Stage = "HARVEST"
	StageCollection   Stage = "COLLECTION"
	StageStorage      Stage = "STORAGE"
	StageProcessing   Stage = "PROCESSING"
	StagePackaging    Stage = "PACKAGING"
	StageTransport    Stage = "TRANSPORT"
	StageDistribution Stage = "DISTRIBUTION"
	StageRetail       Stage = "RETAIL"
)

var stageOrder = []Stage{
	StageHarvest, StageCollection, StageStorage, StageProcessing,
	StagePackaging, StageTransport, StageDistribution, StageRetail,
}

func (s Stage) DisplayName() string { return displayName(string(s)) }

// Order is the 1-based position of the stage in the chain, 0 when unknown.
func (s Stage) Order() int {
	for i, st := range stageOrder {
		if st == s {
			return i + 1
		}
	}
	return 0
}

// Next returns the following stage, or false at RETAIL.
func (s Stage) Next() (Stage, bool) {
	o := s.Order()
	if o == 0 || o == len(stageOrder) {
		return "", false
	}
	return stageOrder[o], true
}

// Previous returns the preceding stage, or false at HARVEST.
func (s Stage) Previous() (Stage, bool) {
	o := s.Order()
	if o <= 1 {
		return "", false
	}
	return stageOrder[o-2], true
}

// Category groups the stage into a phase.
func (s Stage) Category() StageCategory {
	switch s {
	case StageStorage, StageProcessing, StagePackaging:
		return CategoryProcessingPhase
	case StageTransport, StageDistribution, StageRetail:
		return CategoryDistributionPhase
	default:
		return CategoryPostHarvest
	}
}

// StageCategory is the phase a stage belongs to.
type StageCategory string

const (
	CategoryPostHarvest       StageCategory = "POST_HARVEST"
	CategoryProcessingPhase   StageCategory = "PROCESSING_PHASE"
	CategoryDistributionPhase StageCategory = "DISTRIBUTION_PHASE"
)

// QualityStatus grades produce from REJECTED (1) to EXCELLENT (5).
type QualityStatus string

const (
	QualityExcellent QualityStatus = "EXCELLENT"
	QualityGood      QualityStatus = "GOOD"
	QualityFair      QualityStatus = "FAIR"
	QualityPoor      QualityStatus = "POOR"
	QualityRejected  QualityStatus = "REJECTED"
)

func (q QualityStatus) Score() int {
	switch q {
	case QualityExcellent:
		return 5
	case QualityGood:
		return 4
	case QualityFair:
		return 3
	case QualityPoor:
		return 2
	case QualityRejected:
		return 1
	}
	return 0
}

func (q QualityStatus) Acceptable() bool {
	return q.Score() >= 3
}

const highLossStagePercent = 5

// SupplyChain records the quantities moving through one stage of the chain.
type SupplyChain struct {
	Base

	TrackingCode     string        `gorm:"size:30;index" json:"tracking_code"`
	InventoryID      string        `gorm:"size:64;index" json:"inventory_id,omitempty" validate:"max=64"`
	CropProductionID string        `gorm:"size:64" json:"crop_production_id,omitempty" validate:"max=64"`
	CropID           string        `gorm:"size:64;index" json:"crop_id" validate:"required,max=64"`
	Stage            Stage         `gorm:"size:20" json:"stage" validate:"required,oneof=HARVEST COLLECTION STORAGE PROCESSING PACKAGING TRANSPORT DISTRIBUTION RETAIL"`
	StageCategory    StageCategory `gorm:"size:30" json:"stage_category"`
	Location         string        `gorm:"size:200" json:"location" validate:"max=200"`
	ResponsibleParty string        `gorm:"size:100" json:"responsible_party" validate:"max=100"`
	StartDate        *time.Time    `json:"start_date,omitempty"`
	EndDate          *time.Time    `json:"end_date,omitempty"`

	QuantityIn     decimal.Decimal     `gorm:"type:decimal(18,2);not null" json:"quantity_in" validate:"gte=0"`
	QuantityOut    decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"quantity_out" validate:"omitempty,gte=0"`
	LossQuantity   decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"loss_quantity" validate:"omitempty,gte=0"`
	LossInferred   bool                `json:"loss_inferred"`
	LossPercentage decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"loss_percentage"`
	LossReason     string              `gorm:"size:255" json:"loss_reason,omitempty" validate:"max=255"`

	QualityBefore QualityStatus       `gorm:"size:20" json:"quality_before,omitempty" validate:"omitempty,oneof=EXCELLENT GOOD FAIR POOR REJECTED"`
	QualityAfter  QualityStatus       `gorm:"size:20" json:"quality_after,omitempty" validate:"omitempty,oneof=EXCELLENT GOOD FAIR POOR REJECTED"`
	Cost          decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"cost" validate:"omitempty,gte=0"`
	TransportMode string              `gorm:"size:50" json:"transport_mode,omitempty" validate:"max=50"`
	Temperature   *float64            `json:"temperature,omitempty"`
	Humidity      *float64            `json:"humidity,omitempty" validate:"omitempty,gte=0,lte=100"`
	Notes         string              `gorm:"type:text" json:"notes,omitempty"`
}

func (SupplyChain) TableName() string { return "supply_chains" }

func (SupplyChain) IDPrefix() string { return "SC" }

func (s *SupplyChain) Initialize(now time.Time, gen Generator) {
	if s.TrackingCode == "" {
		s.TrackingCode = gen.NewCode("TRK", now)
	}
	if s.StartDate == nil {
		s.StartDate = timePtr(now)
	}
}

// UnmarshalJSON keeps loss_inferred server-owned. A body that names
// loss_quantity, even as null, supplies the loss explicitly.
func (s *SupplyChain) UnmarshalJSON(data []byte) error {
	type plain SupplyChain
	inferred := s.LossInferred
	if err := json.Unmarshal(data, (*plain)(s)); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, explicit := keys["loss_quantity"]
	s.LossInferred = inferred && !explicit
	return nil
}

// Recompute enforces quantity conservation and derives the stage loss.
// A loss not supplied by the caller is inferred from in - out and re-inferred
// on every later mutation.
func (s *SupplyChain) Recompute(time.Time) error {
	if s.StageCategory == "" {
		s.StageCategory = s.Stage.Category()
	}

	if s.LossInferred {
		s.LossQuantity = decimal.NullDecimal{}
		s.LossInferred = false
	}

	if err := s.checkConservation(); err != nil {
		return err
	}

	in := s.QuantityIn
	if in.IsPositive() && s.QuantityOut.Valid && s.QuantityOut.Decimal.IsPositive() &&
		(!s.LossQuantity.Valid || s.LossQuantity.Decimal.IsZero()) {
		if actual := in.Sub(s.QuantityOut.Decimal); actual.IsPositive() {
			s.LossQuantity = some(actual)
			s.LossInferred = true
		}
	}

	switch {
	case !s.LossQuantity.Valid:
		s.LossPercentage = decimal.NullDecimal{}
	case in.IsPositive():
		pct, _ := percentOf(s.LossQuantity.Decimal, in)
		s.LossPercentage = some(pct)
	}
	return nil
}

func (s *SupplyChain) checkConservation() error {
	out := s.QuantityOut.Decimal
	loss := s.LossQuantity.Decimal

	fail := func(reason string) error {
		return &ConservationError{
			QuantityIn:   s.QuantityIn,
			QuantityOut:  out,
			LossQuantity: loss,
			Reason:       reason,
		}
	}

	switch {
	case s.QuantityOut.Valid && out.GreaterThan(s.QuantityIn):
		return fail("quantity out exceeds quantity in")
	case s.LossQuantity.Valid && loss.GreaterThan(s.QuantityIn):
		return fail("loss exceeds quantity in")
	case out.Add(loss).GreaterThan(s.QuantityIn):
		return fail("quantity out plus loss exceeds quantity in")
	}
	return nil
}

func (s *SupplyChain) HasLosses() bool {
	return s.LossQuantity.Valid && s.LossQuantity.Decimal.IsPositive()
}

func (s *SupplyChain) HasHighLosses() bool {
	return s.LossPercentage.Valid && s.LossPercentage.Decimal.GreaterThan(decimal.NewFromInt(highLossStagePercent))
}

func (s *SupplyChain) IsFirstStage() bool { return s.Stage == StageHarvest }

func (s *SupplyChain) IsLastStage() bool { return s.Stage == StageRetail }

func (s *SupplyChain) IsProcessingStage() bool {
	return s.Stage == StageProcessing || s.Stage == StagePackaging
}

func (s *SupplyChain) IsLogisticsStage() bool {
	return s.Stage == StageTransport || s.Stage == StageDistribution
}

func (s *SupplyChain) Completed() bool { return s.EndDate != nil }

func (s *SupplyChain) InProgress() bool { return s.StartDate != nil && s.EndDate == nil }

// DurationHours is the elapsed stage time, up to now for stages still running.
func (s *SupplyChain) DurationHours(now time.Time) (int, bool) {
	if s.StartDate == nil {
		return 0, false
	}
	end := now
	if s.EndDate != nil {
		end = *s.EndDate
	}
	return int(end.Sub(*s.StartDate).Hours()), true
}

func (s *SupplyChain) DurationDays(now time.Time) (int, bool) {
	h, ok := s.DurationHours(now)
	return h / 24, ok
}

// EfficiencyRate is out / in × 100.
func (s *SupplyChain) EfficiencyRate() (decimal.Decimal, bool) {
	if !s.QuantityOut.Valid {
		return decimal.Zero, false
	}
	return percentOf(s.QuantityOut.Decimal, s.QuantityIn)
}

func (s *SupplyChain) CostPerUnit() (decimal.Decimal, bool) {
	if !s.Cost.Valid || !s.QuantityIn.IsPositive() {
		return decimal.Zero, false
	}
	return round2(s.Cost.Decimal.Div(s.QuantityIn)), true
}

func (s *SupplyChain) LossFormatted() string {
	if !s.HasLosses() {
		return "No losses"
	}
	pct := "0.00"
	if s.LossPercentage.Valid {
		pct = s.LossPercentage.Decimal.StringFixed(2)
	}
	return fmt.Sprintf("%s KG (%s%%)", s.LossQuantity.Decimal.StringFixed(2), pct)
}

func (s *SupplyChain) StageSummary() string {
	return fmt.Sprintf("%s - %s (%s) - %s", s.TrackingCode, s.Stage.DisplayName(), displayName(string(s.StageCategory)), s.Location)
}

func (s *SupplyChain) PerformanceSummary() string {
	eff, ok := s.EfficiencyRate()
	if !ok {
		return "Efficiency: N/A - " + s.LossFormatted()
	}
	return fmt.Sprintf("Efficiency: %s%% - %s", eff.StringFixed(2), s.LossFormatted())
}
