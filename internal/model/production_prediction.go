package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Season is an agricultural season.
type Season string

const (
	SeasonA      Season = "SEASON_A"
	SeasonB      Season = "SEASON_B"
	SeasonC      Season = "SEASON_C"
	SeasonAnnual Season = "ANNUAL"
	OffSeason    Season = "OFF_SEASON"
)

// PredictionType is the quantity being forecast.
type PredictionType string

const (
	PredictYield           PredictionType = "YIELD"
	PredictTotalProduction PredictionType = "TOTAL_PRODUCTION"
	PredictPlantedArea     PredictionType = "PLANTED_AREA"
	PredictHarvestPeriod   PredictionType = "HARVEST_PERIOD"
)

// AccuracyLevel bands an achieved accuracy percentage.
type AccuracyLevel string

const (
	AccuracyVeryLow  AccuracyLevel = "VERY_LOW"
	AccuracyLow      AccuracyLevel = "LOW"
	AccuracyMedium   AccuracyLevel = "MEDIUM"
	AccuracyHigh     AccuracyLevel = "HIGH"
	AccuracyVeryHigh AccuracyLevel = "VERY_HIGH"
)

// AccuracyLevelFor maps 0..100 to a band; the lower bound of each band is inclusive.
func AccuracyLevelFor(pct float64) AccuracyLevel {
	switch {
	case pct < 40:
		return AccuracyVeryLow
	case pct < 60:
		return AccuracyLow
	case pct < 75:
		return AccuracyMedium
	case pct < 85:
		return AccuracyHigh
	default:
		return AccuracyVeryHigh
	}
}

// ProductionPrediction is a model forecast that is later scored against the actual outcome.
type ProductionPrediction struct {
	Base

	PredictionCode string         `gorm:"size:30;uniqueIndex" json:"prediction_code"`
	CropID         string         `gorm:"size:64;index" json:"crop_id" validate:"required,max=64"`
	FarmID         string         `gorm:"size:64;index" json:"farm_id,omitempty" validate:"max=64"`
	District       string         `gorm:"size:100" json:"district,omitempty" validate:"max=100"`
	Season         Season         `gorm:"size:20" json:"season" validate:"omitempty,oneof=SEASON_A SEASON_B SEASON_C ANNUAL"`
	PredictionType PredictionType `gorm:"size:30" json:"prediction_type" validate:"required,oneof=YIELD TOTAL_PRODUCTION PLANTED_AREA HARVEST_PERIOD"`

	PredictedValue   decimal.Decimal     `gorm:"type:decimal(18,4);not null" json:"predicted_value" validate:"gte=0"`
	Unit             string              `gorm:"size:20" json:"unit,omitempty" validate:"max=20"`
	ConfidenceLevel  *float64            `json:"confidence_level,omitempty" validate:"omitempty,gte=0,lte=100"`
	ModelVersion     string              `gorm:"size:50" json:"model_version,omitempty" validate:"max=50"`
	UpdateFrequency  string              `gorm:"size:20" json:"update_frequency"`
	PredictionDate   *time.Time          `json:"prediction_date,omitempty"`
	TargetDate       *time.Time          `json:"target_date,omitempty"`
	ActualValue      decimal.NullDecimal `gorm:"type:decimal(18,4)" json:"actual_value" validate:"omitempty,gte=0"`
	AccuracyAchieved decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"accuracy_achieved"`

	ValidationStatus ValidationStatus `gorm:"size:20;index" json:"validation_status" validate:"omitempty,oneof=PENDING VALIDATED REJECTED"`
	ValidatedBy      string           `gorm:"size:100" json:"validated_by,omitempty" validate:"max=100"`
	ValidationDate   *time.Time       `json:"validation_date,omitempty"`
	Published        bool             `json:"published"`
	PublishedDate    *time.Time       `json:"published_date,omitempty"`
}

func (ProductionPrediction) TableName() string { return "production_predictions" }

func (ProductionPrediction) IDPrefix() string { return "PP" }

func (p *ProductionPrediction) Initialize(now time.Time, gen Generator) {
	if p.PredictionCode == "" {
		p.PredictionCode = gen.NewCode("PRED", now)
	}
	if p.UpdateFrequency == "" {
		p.UpdateFrequency = string(MonitorMonthly)
	}
	if p.ValidationStatus == "" {
		p.ValidationStatus = ValidationPending
	}
	if p.PredictionDate == nil {
		p.PredictionDate = timePtr(now)
	}
}

type predictionLifecycle struct {
	validationStatus ValidationStatus
	validatedBy      string
	validationDate   *time.Time
	published        bool
	publishedDate    *time.Time
}

func (p *ProductionPrediction) LifecycleState() any {
	return predictionLifecycle{
		validationStatus: p.ValidationStatus,
		validatedBy:      p.ValidatedBy,
		validationDate:   copyTime(p.ValidationDate),
		published:        p.Published,
		publishedDate:    copyTime(p.PublishedDate),
	}
}

func (p *ProductionPrediction) RestoreLifecycle(state any) {
	s, _ := state.(predictionLifecycle)
	p.ValidationStatus = s.validationStatus
	p.ValidatedBy = s.validatedBy
	p.ValidationDate = s.validationDate
	p.Published = s.published
	p.PublishedDate = s.publishedDate
}

// Recompute scores the prediction once an actual value is known.
func (p *ProductionPrediction) Recompute(time.Time) error {
	if acc, ok := p.accuracy(); ok {
		p.AccuracyAchieved = some(acc)
	}
	return nil
}

// accuracy is (1 - |actual - predicted| / predicted) × 100 with the ratio at 4 decimals,
// clamped to [0, 100].
func (p *ProductionPrediction) accuracy() (decimal.Decimal, bool) {
	if !p.ActualValue.Valid || !p.PredictedValue.IsPositive() {
		return decimal.Zero, false
	}
	diff := p.ActualValue.Decimal.Sub(p.PredictedValue).Abs()
	ratio := diff.Div(p.PredictedValue).Round(4)
	acc := decimal.NewFromInt(1).Sub(ratio).Mul(hundred)
	return round2(decimal.Min(hundred, decimal.Max(decimal.Zero, acc))), true
}

// RecordActual stores the observed outcome and scores the prediction.
func (p *ProductionPrediction) RecordActual(actual decimal.Decimal) {
	if actual.IsNegative() {
		return
	}
	p.ActualValue = some(actual)
	if acc, ok := p.accuracy(); ok {
		p.AccuracyAchieved = some(acc)
	}
}

func (p *ProductionPrediction) AccuracyLevel() (AccuracyLevel, bool) {
	if !p.AccuracyAchieved.Valid {
		return "", false
	}
	f, _ := p.AccuracyAchieved.Decimal.Float64()
	return AccuracyLevelFor(f), true
}

func (p *ProductionPrediction) CanValidate() bool { return p.ValidationStatus == ValidationPending }

func (p *ProductionPrediction) Validate(by string, now time.Time) {
	if p.CanValidate() {
		p.ValidationStatus = ValidationValidated
		p.ValidatedBy = by
		p.ValidationDate = timePtr(now)
	}
}

func (p *ProductionPrediction) Reject(by string, now time.Time) {
	if p.CanValidate() {
		p.ValidationStatus = ValidationRejected
		p.ValidatedBy = by
		p.ValidationDate = timePtr(now)
	}
}

func (p *ProductionPrediction) CanPublish() bool {
	return p.ValidationStatus == ValidationValidated && !p.Published
}

func (p *ProductionPrediction) Publish(now time.Time) {
	if p.CanPublish() {
		p.Published = true
		p.PublishedDate = timePtr(now)
	}
}

func (p *ProductionPrediction) CanUnpublish() bool { return p.Published }

func (p *ProductionPrediction) Unpublish() {
	if p.CanUnpublish() {
		p.Published = false
		p.PublishedDate = nil
	}
}

func (p *ProductionPrediction) HighConfidence() bool {
	return p.ConfidenceLevel != nil && *p.ConfidenceLevel >= 80
}

func (p *ProductionPrediction) TargetPassed(now time.Time) bool {
	return p.TargetDate != nil && now.After(*p.TargetDate)
}

// AwaitingActual is true once the target date passed without an observed value.
func (p *ProductionPrediction) AwaitingActual(now time.Time) bool {
	return p.TargetPassed(now) && !p.ActualValue.Valid
}
