package model

import (
	"time"
)

// RiskLevel is the environmental risk band, LOW (1) to CRITICAL (4).
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

func (r RiskLevel) Priority() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	}
	return 0
}

func (r RiskLevel) HighRisk() bool { return r == RiskHigh || r == RiskCritical }

func (r RiskLevel) RequiresAction() bool { return r != "" && r != RiskLow }

// DataQuality grades an observation's trustworthiness.
type DataQuality string

const (
	DataExcellent DataQuality = "EXCELLENT"
	DataGood      DataQuality = "GOOD"
	DataFair      DataQuality = "FAIR"
	DataPoor      DataQuality = "POOR"
)

// ValidationStatus is the review state of an observation or prediction.
type ValidationStatus string

const (
	ValidationPending   ValidationStatus = "PENDING"
	ValidationValidated ValidationStatus = "VALIDATED"
	ValidationRejected  ValidationStatus = "REJECTED"
)

// MonitoringFrequency is how often a site is observed.
type MonitoringFrequency string

const (
	MonitorDaily     MonitoringFrequency = "DAILY"
	MonitorWeekly    MonitoringFrequency = "WEEKLY"
	MonitorMonthly   MonitoringFrequency = "MONTHLY"
	MonitorQuarterly MonitoringFrequency = "QUARTERLY"
	MonitorAnnually  MonitoringFrequency = "ANNUALLY"
	MonitorOnDemand  MonitoringFrequency = "ON_DEMAND"
)

// IntervalDays is the number of days between observations, or -1 on demand.
func (m MonitoringFrequency) IntervalDays() int {
	switch m {
	case MonitorDaily:
		return 1
	case MonitorWeekly:
		return 7
	case MonitorMonthly:
		return 30
	case MonitorQuarterly:
		return 90
	case MonitorAnnually:
		return 365
	}
	return -1
}

// DataSource is where an observation came from.
type DataSource string

const (
	SourceSatellite        DataSource = "SATELLITE"
	SourceAutomatedSensors DataSource = "AUTOMATED_SENSORS"
	SourceRemoteSensing    DataSource = "REMOTE_SENSING"
	SourceFieldSurvey      DataSource = "FIELD_SURVEY"
	SourceManual           DataSource = "MANUAL"
)

func (d DataSource) Automated() bool {
	return d == SourceSatellite || d == SourceAutomatedSensors || d == SourceRemoteSensing
}

// EnvironmentalData is an environmental observation for a farm or area.
type EnvironmentalData struct {
	Base

	DataCode        string     `gorm:"size:30;uniqueIndex" json:"data_code"`
	FarmID          string     `gorm:"size:64;index" json:"farm_id,omitempty" validate:"max=64"`
	Location        string     `gorm:"size:200" json:"location" validate:"required,max=200"`
	MeasurementDate *time.Time `json:"measurement_date,omitempty"`

	AirQualityIndex        *float64 `json:"air_quality_index,omitempty" validate:"omitempty,gte=0,lte=500"`
	WaterQualityIndex      *float64 `json:"water_quality_index,omitempty" validate:"omitempty,gte=0,lte=100"`
	DeforestationRate      *float64 `json:"deforestation_rate,omitempty" validate:"omitempty,gte=0"`
	SoilErosionRate        *float64 `json:"soil_erosion_rate,omitempty" validate:"omitempty,gte=0"`
	SpeciesCount           *int     `json:"species_count,omitempty" validate:"omitempty,gte=0"`
	EndangeredSpeciesCount *int     `json:"endangered_species_count,omitempty" validate:"omitempty,gte=0"`
	CarbonFootprint        *float64 `json:"carbon_footprint,omitempty"`
	RenewableEnergyPercent *float64 `json:"renewable_energy_percent,omitempty" validate:"omitempty,gte=0,lte=100"`

	EnvironmentalRiskLevel RiskLevel           `gorm:"size:20;index" json:"environmental_risk_level,omitempty"`
	DataSource             DataSource          `gorm:"size:30" json:"data_source,omitempty" validate:"omitempty,oneof=SATELLITE AUTOMATED_SENSORS REMOTE_SENSING FIELD_SURVEY MANUAL"`
	DataQuality            DataQuality         `gorm:"size:20" json:"data_quality,omitempty" validate:"omitempty,oneof=EXCELLENT GOOD FAIR POOR"`
	MonitoringFrequency    MonitoringFrequency `gorm:"size:20" json:"monitoring_frequency,omitempty" validate:"omitempty,oneof=DAILY WEEKLY MONTHLY QUARTERLY ANNUALLY ON_DEMAND"`
	ValidationStatus       ValidationStatus    `gorm:"size:20" json:"validation_status" validate:"omitempty,oneof=PENDING VALIDATED REJECTED"`
	ValidatedBy            string              `gorm:"size:100" json:"validated_by,omitempty" validate:"max=100"`
	ValidationDate         *time.Time          `json:"validation_date,omitempty"`
}

func (EnvironmentalData) TableName() string { return "environmental_data" }

func (EnvironmentalData) IDPrefix() string { return "ED" }

func (e *EnvironmentalData) Initialize(now time.Time, gen Generator) {
	if e.DataCode == "" {
		e.DataCode = gen.NewCode("ENV", now)
	}
	if e.MeasurementDate == nil {
		e.MeasurementDate = timePtr(now)
	}
	if e.ValidationStatus == "" {
		e.ValidationStatus = ValidationPending
	}
}

// Recompute derives the risk band and stamps the validation date.
func (e *EnvironmentalData) Recompute(now time.Time) error {
	if level, ok := e.riskLevel(); ok {
		e.EnvironmentalRiskLevel = level
	}

	reviewed := e.ValidationStatus == ValidationValidated || e.ValidationStatus == ValidationRejected
	if reviewed && e.ValidatedBy != "" && e.ValidationDate == nil {
		e.ValidationDate = timePtr(now)
	}
	return nil
}

// riskLevel averages the 0..3 sub-score of every factor present.
func (e *EnvironmentalData) riskLevel() (RiskLevel, bool) {
	var scores []int

	if e.AirQualityIndex != nil {
		scores = append(scores, band(*e.AirQualityIndex, 150, 100, 50))
	}
	if e.WaterQualityIndex != nil {
		scores = append(scores, bandBelow(*e.WaterQualityIndex, 40, 60, 80))
	}
	if e.DeforestationRate != nil {
		scores = append(scores, band(*e.DeforestationRate, 5, 2, 0.5))
	}
	if e.SoilErosionRate != nil {
		scores = append(scores, band(*e.SoilErosionRate, 10, 5, 2))
	}
	if ratio, ok := e.EndangeredRatio(); ok {
		scores = append(scores, band(ratio, 0.3, 0.2, 0.1))
	}

	if len(scores) == 0 {
		return "", false
	}

	total := 0
	for _, s := range scores {
		total += s
	}
	avg := float64(total) / float64(len(scores))

	switch {
	case avg >= 2.5:
		return RiskCritical, true
	case avg >= 1.5:
		return RiskHigh, true
	case avg >= 0.5:
		return RiskMedium, true
	default:
		return RiskLow, true
	}
}

// band scores 3/2/1/0 for values strictly above high/mid/low.
func band(v, high, mid, low float64) int {
	switch {
	case v > high:
		return 3
	case v > mid:
		return 2
	case v > low:
		return 1
	}
	return 0
}

// bandBelow scores 3/2/1/0 for values strictly below worst/mid/fair.
func bandBelow(v, worst, mid, fair float64) int {
	switch {
	case v < worst:
		return 3
	case v < mid:
		return 2
	case v < fair:
		return 1
	}
	return 0
}

// EndangeredRatio is endangered / total species, defined only when species were counted.
func (e *EnvironmentalData) EndangeredRatio() (float64, bool) {
	if e.SpeciesCount == nil || e.EndangeredSpeciesCount == nil || *e.SpeciesCount <= 0 {
		return 0, false
	}
	return float64(*e.EndangeredSpeciesCount) / float64(*e.SpeciesCount), true
}

func (e *EnvironmentalData) HighRisk() bool { return e.EnvironmentalRiskLevel.HighRisk() }

func (e *EnvironmentalData) RequiresAction() bool { return e.EnvironmentalRiskLevel.RequiresAction() }

func (e *EnvironmentalData) AutomatedSource() bool { return e.DataSource.Automated() }

// NextMonitoringDue is the next scheduled observation, or false for on-demand sites.
func (e *EnvironmentalData) NextMonitoringDue() (time.Time, bool) {
	days := e.MonitoringFrequency.IntervalDays()
	if days < 0 || e.MeasurementDate == nil {
		return time.Time{}, false
	}
	return e.MeasurementDate.AddDate(0, 0, days), true
}

func (e *EnvironmentalData) MonitoringOverdue(now time.Time) bool {
	due, ok := e.NextMonitoringDue()
	return ok && now.After(due)
}
