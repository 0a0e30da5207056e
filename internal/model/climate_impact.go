package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ClimateEvent is the hazard behind a recorded impact.
type ClimateEvent string

const (
	EventDrought         ClimateEvent = "DROUGHT"
	EventFlood           ClimateEvent = "FLOOD"
	EventExtremeHeat     ClimateEvent = "EXTREME_HEAT"
	EventColdWave        ClimateEvent = "COLD_WAVE"
	EventHail            ClimateEvent = "HAIL"
	EventStrongWinds     ClimateEvent = "STRONG_WINDS"
	EventPestOutbreak    ClimateEvent = "PEST_OUTBREAK"
	EventDiseaseOutbreak ClimateEvent = "DISEASE_OUTBREAK"
)

func (e ClimateEvent) Biological() bool {
	return e == EventPestOutbreak || e == EventDiseaseOutbreak
}

func (e ClimateEvent) Weather() bool {
	return e != "" && !e.Biological()
}

func (e ClimateEvent) WaterRelated() bool {
	return e == EventDrought || e == EventFlood
}

func (e ClimateEvent) TemperatureRelated() bool {
	return e == EventExtremeHeat || e == EventColdWave
}

// EventIntensity grades how strong an event was.
type EventIntensity string

const (
	IntensityMild     EventIntensity = "MILD"
	IntensityModerate EventIntensity = "MODERATE"
	IntensitySevere   EventIntensity = "SEVERE"
	IntensityExtreme  EventIntensity = "EXTREME"
)

// Level is 1 for MILD through 4 for EXTREME, 0 when unknown.
func (i EventIntensity) Level() int {
	switch i {
	case IntensityMild:
		return 1
	case IntensityModerate:
		return 2
	case IntensitySevere:
		return 3
	case IntensityExtreme:
		return 4
	default:
		return 0
	}
}

func (i EventIntensity) High() bool {
	return i.Level() >= 3
}

// WarningEffectiveness rates the early warning issued before an event.
type WarningEffectiveness string

const (
	WarningExcellent WarningEffectiveness = "EXCELLENT"
	WarningGood      WarningEffectiveness = "GOOD"
	WarningFair      WarningEffectiveness = "FAIR"
	WarningPoor      WarningEffectiveness = "POOR"
	WarningNone      WarningEffectiveness = "NONE"
)

func (w WarningEffectiveness) Score() int {
	switch w {
	case WarningExcellent:
		return 5
	case WarningGood:
		return 4
	case WarningFair:
		return 3
	case WarningPoor:
		return 2
	default:
		return 1
	}
}

// ResponseEffectiveness rates the response once the event hit.
type ResponseEffectiveness string

const (
	ResponseExcellent ResponseEffectiveness = "EXCELLENT"
	ResponseGood      ResponseEffectiveness = "GOOD"
	ResponseFair      ResponseEffectiveness = "FAIR"
	ResponsePoor      ResponseEffectiveness = "POOR"
)

func (r ResponseEffectiveness) Score() int {
	switch r {
	case ResponseExcellent:
		return 4
	case ResponseGood:
		return 3
	case ResponsePoor:
		return 1
	default:
		return 2
	}
}

// ImpactSeverity bands an impact by its economic loss.
type ImpactSeverity string

const (
	ImpactCatastrophic ImpactSeverity = "CATASTROPHIC"
	ImpactHigh         ImpactSeverity = "HIGH"
	ImpactModerate     ImpactSeverity = "MODERATE"
	ImpactLow          ImpactSeverity = "LOW"
)

var (
	catastrophicLoss = decimal.NewFromInt(1_000_000)
	highLoss         = decimal.NewFromInt(100_000)
	moderateLoss     = decimal.NewFromInt(10_000)
	significantLoss  = decimal.NewFromInt(50_000)
)

const recentImpactDays = 30

// SeverityForLoss bands an economic loss; a missing loss is LOW.
func SeverityForLoss(loss decimal.NullDecimal) ImpactSeverity {
	if !loss.Valid {
		return ImpactLow
	}
	switch {
	case loss.Decimal.GreaterThanOrEqual(catastrophicLoss):
		return ImpactCatastrophic
	case loss.Decimal.GreaterThanOrEqual(highLoss):
		return ImpactHigh
	case loss.Decimal.GreaterThanOrEqual(moderateLoss):
		return ImpactModerate
	default:
		return ImpactLow
	}
}

// ClimateImpact records the effect of one climate event on a crop in a place and season.
type ClimateImpact struct {
	Base

	ImpactCode string         `gorm:"size:30;uniqueIndex" json:"impact_code"`
	CropID     string         `gorm:"size:64;index" json:"crop_id" validate:"required,max=64"`
	Region     string         `gorm:"size:100" json:"region" validate:"required,max=100"`
	District   string         `gorm:"size:100;index" json:"district,omitempty" validate:"max=100"`
	Year       int            `json:"year" validate:"required,gte=1900,lte=2100"`
	Season     Season         `gorm:"size:20" json:"season" validate:"required,oneof=SEASON_A SEASON_B SEASON_C ANNUAL OFF_SEASON"`
	Event      ClimateEvent   `gorm:"column:climate_event;size:30;index" json:"climate_event" validate:"required,oneof=DROUGHT FLOOD EXTREME_HEAT COLD_WAVE HAIL STRONG_WINDS PEST_OUTBREAK DISEASE_OUTBREAK"`
	Intensity  EventIntensity `gorm:"column:event_intensity;size:20" json:"event_intensity" validate:"required,oneof=MILD MODERATE SEVERE EXTREME"`

	EventStartDate    *time.Time `json:"event_start_date" validate:"required"`
	EventEndDate      *time.Time `json:"event_end_date,omitempty"`
	EventDurationDays *int       `json:"event_duration_days"`
	EventFrequency    *int       `json:"event_frequency,omitempty" validate:"omitempty,gte=0"`

	AffectedArea       decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"affected_area" validate:"omitempty,gte=0"`
	AffectedPopulation *int                `json:"affected_population,omitempty" validate:"omitempty,gte=0"`
	AffectedHouseholds *int                `json:"affected_households,omitempty" validate:"omitempty,gte=0"`
	CropAreaAffected   decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"crop_area_affected" validate:"omitempty,gte=0"`
	LivestockAffected  *int                `json:"livestock_affected,omitempty" validate:"omitempty,gte=0"`

	YieldImpact          decimal.NullDecimal `gorm:"type:decimal(7,2)" json:"yield_impact"`
	ProductionLoss       decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"production_loss" validate:"omitempty,gte=0"`
	EconomicLoss         decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"economic_loss" validate:"omitempty,gte=0"`
	RecoveryTimeDays     *int                `json:"recovery_time_days,omitempty" validate:"omitempty,gte=0"`
	RecoveryCost         decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"recovery_cost" validate:"omitempty,gte=0"`
	InsurancePayout      decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"insurance_payout" validate:"omitempty,gte=0"`
	GovernmentAssistance decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"government_assistance" validate:"omitempty,gte=0"`
	InternationalAid     decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"international_aid" validate:"omitempty,gte=0"`

	AdaptationMeasures    string                `gorm:"type:text" json:"adaptation_measures,omitempty" validate:"max=2000"`
	MitigationStrategies  string                `gorm:"type:text" json:"mitigation_strategies,omitempty" validate:"max=2000"`
	WarningEffectiveness  WarningEffectiveness  `gorm:"size:20" json:"warning_effectiveness" validate:"omitempty,oneof=EXCELLENT GOOD FAIR POOR NONE"`
	ResponseEffectiveness ResponseEffectiveness `gorm:"size:20" json:"response_effectiveness" validate:"omitempty,oneof=EXCELLENT GOOD FAIR POOR"`
	ProbabilityRecurrence decimal.NullDecimal   `gorm:"type:decimal(5,2)" json:"probability_recurrence" validate:"omitempty,gte=0,lte=100"`

	ReportDate       *time.Time `json:"report_date"`
	ReportedBy       string     `gorm:"size:100" json:"reported_by,omitempty" validate:"max=100"`
	Verified         bool       `gorm:"index" json:"verified"`
	VerificationDate *time.Time `json:"verification_date,omitempty"`
}

func (ClimateImpact) TableName() string { return "climate_impacts" }

func (ClimateImpact) IDPrefix() string { return "CI" }

func (c *ClimateImpact) Initialize(now time.Time, gen Generator) {
	if c.ImpactCode == "" {
		c.ImpactCode = gen.NewCode("IMP", now)
	}
	if c.ReportDate == nil {
		c.ReportDate = timePtr(now)
	}
	if c.WarningEffectiveness == "" {
		c.WarningEffectiveness = WarningNone
	}
	if c.ResponseEffectiveness == "" {
		c.ResponseEffectiveness = ResponseFair
	}
}

// Recompute derives the inclusive event duration and stamps the first verification.
func (c *ClimateImpact) Recompute(now time.Time) error {
	c.EventDurationDays = nil
	if c.EventStartDate != nil && c.EventEndDate != nil {
		if days := calendarDaysBetween(*c.EventStartDate, *c.EventEndDate); days >= 0 {
			c.EventDurationDays = intPtr(days + 1)
		}
	}

	if c.Verified && c.VerificationDate == nil {
		c.VerificationDate = timePtr(now)
	}
	return nil
}

func (c *ClimateImpact) Severity() ImpactSeverity {
	return SeverityForLoss(c.EconomicLoss)
}

// Ongoing is true while the event has no end date or ends today or later.
func (c *ClimateImpact) Ongoing(now time.Time) bool {
	return c.EventEndDate == nil || !startOfDay(now).After(startOfDay(*c.EventEndDate))
}

func (c *ClimateImpact) Recent(now time.Time) bool {
	return c.EventStartDate != nil && calendarDaysBetween(*c.EventStartDate, now) <= recentImpactDays
}

func (c *ClimateImpact) SignificantEconomicImpact() bool {
	return c.EconomicLoss.Valid && c.EconomicLoss.Decimal.GreaterThanOrEqual(significantLoss)
}

func (c *ClimateImpact) RequiresEmergencyResponse() bool {
	return c.Intensity.High() || c.SignificantEconomicImpact()
}

// TotalAssistance sums insurance payouts, government assistance and international aid.
func (c *ClimateImpact) TotalAssistance() decimal.Decimal {
	total := decimal.Zero
	for _, d := range []decimal.NullDecimal{c.InsurancePayout, c.GovernmentAssistance, c.InternationalAid} {
		if d.Valid {
			total = total.Add(d.Decimal)
		}
	}
	return total
}

func (c *ClimateImpact) Summary() string {
	return fmt.Sprintf("%s - %s (%s) in %s, %d %s",
		c.ImpactCode, displayName(string(c.Event)), displayName(string(c.Intensity)),
		c.Region, c.Year, displayName(string(c.Season)))
}
