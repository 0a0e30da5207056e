package model

import (
	"fmt"
	"slices"
	"time"

	"gorm.io/datatypes"
)

// AlertCategory is the domain an alert concerns.
type AlertCategory string

const (
	AlertProduction     AlertCategory = "PRODUCTION"
	AlertWeather        AlertCategory = "WEATHER"
	AlertMarket         AlertCategory = "MARKET"
	AlertDisease        AlertCategory = "DISEASE"
	AlertPolicy         AlertCategory = "POLICY"
	AlertInfrastructure AlertCategory = "INFRASTRUCTURE"
)

// AlertLevel is the alert priority, INFO (1) to CRITICAL (5).
type AlertLevel string

const (
	LevelInfo     AlertLevel = "INFO"
	LevelLow      AlertLevel = "LOW"
	LevelMedium   AlertLevel = "MEDIUM"
	LevelHigh     AlertLevel = "HIGH"
	LevelCritical AlertLevel = "CRITICAL"
)

func (l AlertLevel) Priority() int {
	switch l {
	case LevelInfo:
		return 1
	case LevelLow:
		return 2
	case LevelMedium:
		return 3
	case LevelHigh:
		return 4
	case LevelCritical:
		return 5
	}
	return 0
}

// Color is the hex color used when rendering the level.
func (l AlertLevel) Color() string {
	switch l {
	case LevelInfo:
		return "#17a2b8"
	case LevelLow:
		return "#28a745"
	case LevelMedium:
		return "#ffc107"
	case LevelHigh:
		return "#fd7e14"
	case LevelCritical:
		return "#dc3545"
	}
	return "#6c757d"
}

// AlertLevelFromSeverity maps a 1..10 severity score to a level.
func AlertLevelFromSeverity(score int) AlertLevel {
	switch {
	case score <= 2:
		return LevelInfo
	case score <= 4:
		return LevelLow
	case score <= 6:
		return LevelMedium
	case score <= 8:
		return LevelHigh
	default:
		return LevelCritical
	}
}

// SourceReliability weighs the alert's source.
type SourceReliability string

const (
	SourceVerified    SourceReliability = "VERIFIED"
	SourceUnverified  SourceReliability = "UNVERIFIED"
	SourcePreliminary SourceReliability = "PRELIMINARY"
)

func (s SourceReliability) Weight() int {
	switch s {
	case SourceVerified:
		return 3
	case SourceUnverified:
		return 2
	case SourcePreliminary:
		return 1
	}
	return 0
}

// ResolutionStatus tracks the response to an alert.
type ResolutionStatus string

const (
	ResolutionUnresolved ResolutionStatus = "UNRESOLVED"
	ResolutionInProgress ResolutionStatus = "IN_PROGRESS"
	ResolutionResolved   ResolutionStatus = "RESOLVED"
)

// Urgency is the response urgency derived from level and escalation.
type Urgency string

const (
	UrgencyEmergency Urgency = "EMERGENCY"
	UrgencyUrgent    Urgency = "URGENT"
	UrgencyModerate  Urgency = "MODERATE"
	UrgencyRoutine   Urgency = "ROUTINE"
)

const (
	maxEscalation          = 5
	highPopulationImpact   = 10000
	severePopulationImpact = 100000
)

// FoodSecurityAlert is an issued warning about a food security threat.
type FoodSecurityAlert struct {
	Base

	AlertCode   string        `gorm:"size:30;uniqueIndex" json:"alert_code"`
	Title       string        `gorm:"size:200" json:"title" validate:"required,max=200"`
	Description string        `gorm:"type:text" json:"description,omitempty"`
	Category    AlertCategory `gorm:"size:20;index" json:"category" validate:"required,oneof=PRODUCTION WEATHER MARKET DISEASE POLICY INFRASTRUCTURE"`
	AlertLevel  AlertLevel    `gorm:"size:20;index" json:"alert_level" validate:"required,oneof=INFO LOW MEDIUM HIGH CRITICAL"`

	EscalationLevel    int                         `json:"escalation_level" validate:"omitempty,min=1,max=5"`
	SeverityScore      *int                        `json:"severity_score,omitempty" validate:"omitempty,min=1,max=10"`
	AffectedPopulation *int64                      `json:"affected_population,omitempty" validate:"omitempty,gte=0"`
	AffectedDistricts  datatypes.JSONSlice[string] `json:"affected_districts,omitempty"`
	AffectedCrops      datatypes.JSONSlice[string] `json:"affected_crops,omitempty"`
	SourceReliability  SourceReliability           `gorm:"size:20" json:"source_reliability" validate:"omitempty,oneof=VERIFIED UNVERIFIED PRELIMINARY"`

	ResolutionStatus   ResolutionStatus            `gorm:"size:20;index" json:"resolution_status" validate:"omitempty,oneof=UNRESOLVED IN_PROGRESS RESOLVED"`
	Active             bool                        `gorm:"index" json:"active"`
	IssueDate          *time.Time                  `json:"issue_date,omitempty"`
	ExpiryDate         *time.Time                  `json:"expiry_date,omitempty"`
	ResponseRequired   bool                        `json:"response_required"`
	ResponseDeadline   *time.Time                  `json:"response_deadline,omitempty"`
	ResolutionDate     *time.Time                  `json:"resolution_date,omitempty"`
	ImpactAssessment   string                      `gorm:"type:text" json:"impact_assessment,omitempty"`
	ResponsePlan       string                      `gorm:"type:text" json:"response_plan,omitempty"`
	MitigationMeasures string                      `gorm:"type:text" json:"mitigation_measures,omitempty"`
	Stakeholders       datatypes.JSONSlice[string] `json:"stakeholders,omitempty"`
	FollowUpAlerts     datatypes.JSONSlice[string] `json:"follow_up_alerts,omitempty"`
}

func (FoodSecurityAlert) TableName() string { return "food_security_alerts" }

func (FoodSecurityAlert) IDPrefix() string { return "FSA" }

// Initialize issues the alert: it starts active and unresolved.
func (a *FoodSecurityAlert) Initialize(now time.Time, gen Generator) {
	if a.AlertCode == "" {
		a.AlertCode = gen.NewCode("ALT", now)
	}
	if a.EscalationLevel == 0 {
		a.EscalationLevel = 1
	}
	if a.SourceReliability == "" {
		a.SourceReliability = SourceUnverified
	}
	if a.ResolutionStatus == "" {
		a.ResolutionStatus = ResolutionUnresolved
	}
	if a.IssueDate == nil {
		a.IssueDate = timePtr(now)
	}
	a.Active = true
	if a.SeverityScore == nil {
		a.SeverityScore = intPtr(a.ComputeSeverity())
	}
}

type alertLifecycle struct {
	escalationLevel  int
	resolutionStatus ResolutionStatus
	active           bool
	resolutionDate   *time.Time
}

func (a *FoodSecurityAlert) LifecycleState() any {
	return alertLifecycle{a.EscalationLevel, a.ResolutionStatus, a.Active, copyTime(a.ResolutionDate)}
}

func (a *FoodSecurityAlert) RestoreLifecycle(state any) {
	s, _ := state.(alertLifecycle)
	a.EscalationLevel = s.escalationLevel
	a.ResolutionStatus = s.resolutionStatus
	a.Active = s.active
	a.ResolutionDate = s.resolutionDate
}

// Recompute stamps the resolution date once the alert is resolved.
func (a *FoodSecurityAlert) Recompute(now time.Time) error {
	if a.ResolutionStatus == ResolutionResolved && a.ResolutionDate == nil {
		a.ResolutionDate = timePtr(now)
	}
	return nil
}

// ComputeSeverity is priority×2 + (escalation-1) + population bonus, clamped to [1,10].
func (a *FoodSecurityAlert) ComputeSeverity() int {
	escalation := a.EscalationLevel
	if escalation < 1 {
		escalation = 1
	}
	score := a.AlertLevel.Priority()*2 + (escalation - 1)

	if a.AffectedPopulation != nil {
		switch {
		case *a.AffectedPopulation > severePopulationImpact:
			score += 2
		case *a.AffectedPopulation > highPopulationImpact:
			score++
		}
	}
	return min(10, max(1, score))
}

func (a *FoodSecurityAlert) IsExpired(now time.Time) bool {
	return a.ExpiryDate != nil && now.After(*a.ExpiryDate)
}

func (a *FoodSecurityAlert) IsActive(now time.Time) bool {
	return a.Active && !a.IsExpired(now)
}

func (a *FoodSecurityAlert) IsOverdue(now time.Time) bool {
	return a.ResponseRequired && a.ResponseDeadline != nil && now.After(*a.ResponseDeadline) &&
		a.ResolutionStatus != ResolutionResolved
}

func (a *FoodSecurityAlert) HighPopulationImpact() bool {
	return a.AffectedPopulation != nil && *a.AffectedPopulation > highPopulationImpact
}

func (a *FoodSecurityAlert) Urgency() Urgency {
	switch {
	case a.AlertLevel == LevelCritical || a.EscalationLevel >= 4:
		return UrgencyEmergency
	case a.AlertLevel == LevelHigh || a.EscalationLevel >= 3:
		return UrgencyUrgent
	case a.AlertLevel == LevelMedium || a.EscalationLevel >= 2:
		return UrgencyModerate
	default:
		return UrgencyRoutine
	}
}

func (a *FoodSecurityAlert) CanEscalate(now time.Time) bool {
	return a.EscalationLevel < maxEscalation && a.IsActive(now)
}

// Escalate raises the escalation level; from level 4 on the alert becomes CRITICAL.
func (a *FoodSecurityAlert) Escalate(now time.Time) {
	if !a.CanEscalate(now) {
		return
	}
	a.EscalationLevel++
	if a.EscalationLevel >= 4 {
		a.AlertLevel = LevelCritical
	}
	a.SeverityScore = intPtr(a.ComputeSeverity())
}

func (a *FoodSecurityAlert) CanMarkInProgress() bool {
	return a.ResolutionStatus == ResolutionUnresolved
}

func (a *FoodSecurityAlert) MarkInProgress() {
	if a.CanMarkInProgress() {
		a.ResolutionStatus = ResolutionInProgress
	}
}

func (a *FoodSecurityAlert) CanResolve(now time.Time) bool {
	return a.ResolutionStatus != ResolutionResolved && a.IsActive(now)
}

func (a *FoodSecurityAlert) MarkResolved(now time.Time) {
	if a.CanResolve(now) {
		a.ResolutionStatus = ResolutionResolved
		a.ResolutionDate = timePtr(now)
	}
}

func (a *FoodSecurityAlert) CanDeactivate(now time.Time) bool {
	return a.Active && (a.IsExpired(now) || a.ResolutionStatus == ResolutionResolved)
}

func (a *FoodSecurityAlert) Deactivate(now time.Time) {
	if a.CanDeactivate(now) {
		a.Active = false
	}
}

func (a *FoodSecurityAlert) CanReactivate(now time.Time) bool {
	return !a.Active && !a.IsExpired(now)
}

// Reactivate reopens an inactive, unexpired alert as unresolved.
func (a *FoodSecurityAlert) Reactivate(now time.Time) {
	if !a.CanReactivate(now) {
		return
	}
	a.Active = true
	a.ResolutionStatus = ResolutionUnresolved
	a.ResolutionDate = nil
}

func (a *FoodSecurityAlert) CanExtend(days int) bool {
	return a.Active && a.ExpiryDate != nil && days > 0
}

func (a *FoodSecurityAlert) ExtendExpiry(days int) {
	if a.CanExtend(days) {
		a.ExpiryDate = timePtr(a.ExpiryDate.AddDate(0, 0, days))
	}
}

func (a *FoodSecurityAlert) UpdateResponseDeadline(deadline time.Time) {
	a.ResponseDeadline = timePtr(deadline)
	a.ResponseRequired = true
}

func (a *FoodSecurityAlert) AddStakeholder(name string) {
	if name != "" && !slices.Contains(a.Stakeholders, name) {
		a.Stakeholders = append(a.Stakeholders, name)
	}
}

func (a *FoodSecurityAlert) AddFollowUpAlert(alertID string) {
	if alertID != "" && !slices.Contains(a.FollowUpAlerts, alertID) {
		a.FollowUpAlerts = append(a.FollowUpAlerts, alertID)
	}
}

func (a *FoodSecurityAlert) HasCompleteImpactAssessment() bool {
	return a.AffectedPopulation != nil && len(a.AffectedDistricts) > 0 && a.ImpactAssessment != ""
}

func (a *FoodSecurityAlert) HasResponsePlan() bool {
	return a.ResponsePlan != "" || a.MitigationMeasures != ""
}

func (a *FoodSecurityAlert) ReadyForResolution() bool {
	return a.ResolutionStatus == ResolutionInProgress && a.MitigationMeasures != ""
}

func (a *FoodSecurityAlert) PopulationFormatted() string {
	if a.AffectedPopulation == nil {
		return "Unknown"
	}
	p := *a.AffectedPopulation
	switch {
	case p >= 1_000_000:
		return fmt.Sprintf("%.1fM people", float64(p)/1_000_000)
	case p >= 1_000:
		return fmt.Sprintf("%.1fK people", float64(p)/1_000)
	default:
		return fmt.Sprintf("%d people", p)
	}
}

func (a *FoodSecurityAlert) SeverityFormatted() string {
	if a.SeverityScore == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d/10", *a.SeverityScore)
}

func (a *FoodSecurityAlert) Summary() string {
	return fmt.Sprintf("%s - %s - %s", a.AlertCode, a.Title, a.AlertLevel)
}
