package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PolicyType is the instrument a policy uses.
type PolicyType string

const (
	PolicySubsidy         PolicyType = "SUBSIDY"
	PolicyTax             PolicyType = "TAX"
	PolicyRegulation      PolicyType = "REGULATION"
	PolicySupportProgram  PolicyType = "SUPPORT_PROGRAM"
	PolicyTradePolicy     PolicyType = "TRADE_POLICY"
	PolicyLandReform      PolicyType = "LAND_REFORM"
	PolicyCreditProgram   PolicyType = "CREDIT_PROGRAM"
	PolicyInsurance       PolicyType = "INSURANCE"
	PolicyResearchFunding PolicyType = "RESEARCH_FUNDING"
)

func (p PolicyType) Financial() bool {
	return p == PolicySubsidy || p == PolicyCreditProgram || p == PolicyInsurance || p == PolicyResearchFunding
}

func (p PolicyType) Regulatory() bool {
	return p == PolicyRegulation || p == PolicyTax || p == PolicyTradePolicy || p == PolicyLandReform
}

// PolicyCategory is the sector a policy targets.
type PolicyCategory string

const (
	PolicyProduction     PolicyCategory = "PRODUCTION"
	PolicyMarket         PolicyCategory = "MARKET"
	PolicyEnvironment    PolicyCategory = "ENVIRONMENT"
	PolicySocial         PolicyCategory = "SOCIAL"
	PolicyTechnology     PolicyCategory = "TECHNOLOGY"
	PolicyInfrastructure PolicyCategory = "INFRASTRUCTURE"
)

// GeographicScope is the administrative level a policy applies to.
type GeographicScope string

const (
	ScopeNational   GeographicScope = "NATIONAL"
	ScopeProvincial GeographicScope = "PROVINCIAL"
	ScopeDistrict   GeographicScope = "DISTRICT"
	ScopeSector     GeographicScope = "SECTOR"
	ScopeLocal      GeographicScope = "LOCAL"
)

// PolicyStatus is the lifecycle state of a policy.
type PolicyStatus string

const (
	PolicyDraft       PolicyStatus = "DRAFT"
	PolicyActive      PolicyStatus = "ACTIVE"
	PolicySuspended   PolicyStatus = "SUSPENDED"
	PolicyExpired     PolicyStatus = "EXPIRED"
	PolicyCancelled   PolicyStatus = "CANCELLED"
	PolicyUnderReview PolicyStatus = "UNDER_REVIEW"
)

func (s PolicyStatus) Inactive() bool {
	return s == PolicySuspended || s == PolicyExpired || s == PolicyCancelled
}

func (s PolicyStatus) CanBeModified() bool {
	return s == PolicyDraft || s == PolicyUnderReview
}

// PolicyEffectiveness grades a policy by its budget utilization.
type PolicyEffectiveness string

const (
	PolicyHighlyEffective     PolicyEffectiveness = "HIGHLY_EFFECTIVE"
	PolicyEffective           PolicyEffectiveness = "EFFECTIVE"
	PolicyModeratelyEffective PolicyEffectiveness = "MODERATELY_EFFECTIVE"
	PolicyLessEffective       PolicyEffectiveness = "LESS_EFFECTIVE"
	PolicyIneffective         PolicyEffectiveness = "INEFFECTIVE"
	PolicyNotAssessed         PolicyEffectiveness = "NOT_ASSESSED"
)

// EffectivenessForUtilization bands a utilization percentage; band lower bounds are inclusive.
func EffectivenessForUtilization(rate decimal.NullDecimal) PolicyEffectiveness {
	if !rate.Valid {
		return PolicyNotAssessed
	}
	switch r := rate.Decimal; {
	case r.GreaterThanOrEqual(decimal.NewFromInt(90)):
		return PolicyHighlyEffective
	case r.GreaterThanOrEqual(decimal.NewFromInt(75)):
		return PolicyEffective
	case r.GreaterThanOrEqual(decimal.NewFromInt(60)):
		return PolicyModeratelyEffective
	case r.GreaterThanOrEqual(decimal.NewFromInt(40)):
		return PolicyLessEffective
	default:
		return PolicyIneffective
	}
}

const (
	policyExpiringWindowDays = 90
	highUtilizationPercent   = 80
)

// PolicyData is a government agricultural policy or programme.
type PolicyData struct {
	Base

	PolicyCode      string                      `gorm:"size:30;uniqueIndex" json:"policy_code"`
	PolicyName      string                      `gorm:"size:200" json:"policy_name" validate:"required,max=200"`
	PolicyType      PolicyType                  `gorm:"size:30;index" json:"policy_type" validate:"required,oneof=SUBSIDY TAX REGULATION SUPPORT_PROGRAM TRADE_POLICY LAND_REFORM CREDIT_PROGRAM INSURANCE RESEARCH_FUNDING"`
	PolicyCategory  PolicyCategory              `gorm:"size:20;index" json:"policy_category" validate:"required,oneof=PRODUCTION MARKET ENVIRONMENT SOCIAL TECHNOLOGY INFRASTRUCTURE"`
	Description     string                      `gorm:"type:text" json:"description" validate:"required,max=5000"`
	Objectives      string                      `gorm:"type:text" json:"objectives,omitempty" validate:"max=3000"`
	GeographicScope GeographicScope             `gorm:"size:20" json:"geographic_scope" validate:"required,oneof=NATIONAL PROVINCIAL DISTRICT SECTOR LOCAL"`
	AffectedRegions datatypes.JSONSlice[string] `json:"affected_regions,omitempty"`

	EffectiveDate  *time.Time `json:"effective_date" validate:"required"`
	ExpiryDate     *time.Time `gorm:"index" json:"expiry_date,omitempty"`
	NextReviewDate *time.Time `json:"next_review_date,omitempty"`

	TotalBudget         decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"total_budget" validate:"omitempty,gte=0"`
	BudgetAllocated     decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"budget_allocated" validate:"omitempty,gte=0"`
	BudgetUtilized      decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"budget_utilized" validate:"omitempty,gte=0"`
	UtilizationRate     decimal.NullDecimal `gorm:"type:decimal(7,2)" json:"utilization_rate"`
	Currency            string              `gorm:"size:3" json:"currency" validate:"omitempty,len=3"`
	FundingSource       string              `gorm:"size:100" json:"funding_source,omitempty" validate:"max=100"`
	ImplementingAgency  string              `gorm:"size:150" json:"implementing_agency" validate:"required,max=150"`
	MinistryResponsible string              `gorm:"size:100" json:"ministry_responsible,omitempty" validate:"max=100"`

	BeneficiariesCount    *int `json:"beneficiaries_count,omitempty" validate:"omitempty,gte=0"`
	FarmersBenefited      *int `json:"farmers_benefited,omitempty" validate:"omitempty,gte=0"`
	CooperativesBenefited *int `json:"cooperatives_benefited,omitempty" validate:"omitempty,gte=0"`

	Status                 PolicyStatus `gorm:"size:20;index" json:"status" validate:"omitempty,oneof=DRAFT ACTIVE SUSPENDED EXPIRED CANCELLED UNDER_REVIEW"`
	PublicConsultation     bool         `json:"public_consultation"`
	ParliamentaryApproval  bool         `json:"parliamentary_approval"`
	EnvironmentalClearance bool         `json:"environmental_clearance"`
	ClimateSmart           bool         `json:"climate_smart"`
	YouthFocus             bool         `json:"youth_focus"`
	GenderConsiderations   string       `gorm:"type:text" json:"gender_considerations,omitempty" validate:"max=2000"`
	ActualOutcomes         string       `gorm:"type:text" json:"actual_outcomes,omitempty" validate:"max=3000"`
}

func (PolicyData) TableName() string { return "policy_data" }

func (PolicyData) IDPrefix() string { return "PD" }

// Initialize drafts the policy with a review one year after it takes effect.
func (p *PolicyData) Initialize(now time.Time, gen Generator) {
	if p.PolicyCode == "" {
		p.PolicyCode = gen.NewCode("POL", now)
	}
	if p.Currency == "" {
		p.Currency = "RWF"
	}
	if p.Status == "" {
		p.Status = PolicyDraft
	}
	if p.NextReviewDate == nil && p.EffectiveDate != nil {
		p.NextReviewDate = timePtr(p.EffectiveDate.AddDate(1, 0, 0))
	}
}

// Recompute derives the budget utilization and expires an active policy past its expiry day.
func (p *PolicyData) Recompute(now time.Time) error {
	if p.BudgetAllocated.Valid && p.BudgetAllocated.Decimal.IsPositive() && p.BudgetUtilized.Valid {
		ratio := p.BudgetUtilized.Decimal.DivRound(p.BudgetAllocated.Decimal, 4)
		p.UtilizationRate = some(round2(ratio.Mul(hundred)))
	}

	if p.Status == PolicyActive && p.PastExpiry(now) {
		p.Status = PolicyExpired
	}
	return nil
}

// PastExpiry is true from the day after the expiry date.
func (p *PolicyData) PastExpiry(now time.Time) bool {
	return p.ExpiryDate != nil && startOfDay(now).After(startOfDay(*p.ExpiryDate))
}

func (p *PolicyData) Effectiveness() PolicyEffectiveness {
	return EffectivenessForUtilization(p.UtilizationRate)
}

// CurrentlyActive is true for an ACTIVE policy between its effective and expiry days.
func (p *PolicyData) CurrentlyActive(now time.Time) bool {
	if p.Status != PolicyActive {
		return false
	}
	if p.EffectiveDate != nil && startOfDay(now).Before(startOfDay(*p.EffectiveDate)) {
		return false
	}
	return !p.PastExpiry(now)
}

func (p *PolicyData) ExpiringSoon(now time.Time) bool {
	return p.Status == PolicyActive && p.ExpiryDate != nil &&
		calendarDaysBetween(now, *p.ExpiryDate) <= policyExpiringWindowDays
}

func (p *PolicyData) HighBudgetUtilization() bool {
	return p.UtilizationRate.Valid && p.UtilizationRate.Decimal.GreaterThanOrEqual(decimal.NewFromInt(highUtilizationPercent))
}

func (p *PolicyData) RequiresReview(now time.Time) bool {
	return p.NextReviewDate != nil && startOfDay(now).After(startOfDay(*p.NextReviewDate))
}

func (p *PolicyData) SociallyInclusive() bool {
	return p.YouthFocus || p.GenderConsiderations != ""
}

func (p *PolicyData) EnvironmentallyFriendly() bool {
	return p.ClimateSmart || p.EnvironmentalClearance || p.PolicyCategory == PolicyEnvironment
}

// UtilizationFormatted renders the utilization rate as a percentage, or N/A.
func (p *PolicyData) UtilizationFormatted() string {
	if !p.UtilizationRate.Valid {
		return "N/A"
	}
	return p.UtilizationRate.Decimal.StringFixed(2) + "%"
}

func (p *PolicyData) Summary() string {
	return fmt.Sprintf("%s - %s (%s) - %s", p.PolicyCode, p.PolicyName,
		displayName(string(p.PolicyType)), displayName(string(p.Status)))
}
