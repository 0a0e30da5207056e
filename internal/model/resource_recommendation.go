package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResourceType is the resource a recommendation allocates.
type ResourceType string

const (
	ResourceFertilizer ResourceType = "FERTILIZER"
	ResourceWater      ResourceType = "WATER"
	ResourceSeeds      ResourceType = "SEEDS"
	ResourcePesticide  ResourceType = "PESTICIDE"
	ResourceEquipment  ResourceType = "EQUIPMENT"
	ResourceLabor      ResourceType = "LABOR"
	ResourceFinancing  ResourceType = "FINANCING"
)

func (r ResourceType) InputResource() bool {
	return r == ResourceFertilizer || r == ResourceWater || r == ResourceSeeds || r == ResourcePesticide
}

func (r ResourceType) CapitalResource() bool {
	return r == ResourceEquipment || r == ResourceFinancing
}

// RecommendationCategory is why a recommendation was issued.
type RecommendationCategory string

const (
	CategoryOptimization   RecommendationCategory = "OPTIMIZATION"
	CategoryProblemSolving RecommendationCategory = "PROBLEM_SOLVING"
	CategoryPreventive     RecommendationCategory = "PREVENTIVE"
	CategorySeasonal       RecommendationCategory = "SEASONAL"
	CategoryEmergency      RecommendationCategory = "EMERGENCY"
)

func (c RecommendationCategory) Urgent() bool {
	return c == CategoryEmergency || c == CategoryProblemSolving
}

// ValidityDays is how long a recommendation of this category stays actionable.
func (c RecommendationCategory) ValidityDays() int {
	switch c {
	case CategoryEmergency:
		return 7
	case CategoryProblemSolving:
		return 14
	case CategorySeasonal:
		return 90
	case CategoryPreventive:
		return 60
	}
	return 30
}

// Priority ranks a recommendation, LOW (1) to URGENT (4).
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

func (p Priority) Level() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	}
	return 0
}

// RecommendationStatus is the lifecycle state of a recommendation.
type RecommendationStatus string

const (
	RecActive      RecommendationStatus = "ACTIVE"
	RecImplemented RecommendationStatus = "IMPLEMENTED"
	RecExpired     RecommendationStatus = "EXPIRED"
	RecRejected    RecommendationStatus = "REJECTED"
	RecSuperseded  RecommendationStatus = "SUPERSEDED"
)

func (s RecommendationStatus) Closed() bool {
	return s == RecExpired || s == RecRejected || s == RecSuperseded
}

// Difficulty is the implementation difficulty, EASY (1) to EXPERT_REQUIRED (4).
type Difficulty string

const (
	DifficultyEasy      Difficulty = "EASY"
	DifficultyModerate  Difficulty = "MODERATE"
	DifficultyDifficult Difficulty = "DIFFICULT"
	DifficultyExpert    Difficulty = "EXPERT_REQUIRED"
)

func (d Difficulty) RequiresExpertise() bool {
	return d == DifficultyDifficult || d == DifficultyExpert
}

// SustainabilityBand maps a 1..10 sustainability score to a named band.
func SustainabilityBand(score int) string {
	switch {
	case score <= 2:
		return "VERY_LOW"
	case score <= 4:
		return "LOW"
	case score <= 6:
		return "MEDIUM"
	case score <= 8:
		return "HIGH"
	default:
		return "VERY_HIGH"
	}
}

// ResourceRecommendation is an advisory allocation of a farm resource.
type ResourceRecommendation struct {
	Base

	RecommendationCode string                 `gorm:"size:30;uniqueIndex" json:"recommendation_code"`
	FarmID             string                 `gorm:"size:64;index" json:"farm_id" validate:"required,max=64"`
	CropID             string                 `gorm:"size:64" json:"crop_id,omitempty" validate:"max=64"`
	ResourceType       ResourceType           `gorm:"size:20" json:"resource_type" validate:"required,oneof=FERTILIZER WATER SEEDS PESTICIDE EQUIPMENT LABOR FINANCING"`
	Category           RecommendationCategory `gorm:"size:20" json:"category" validate:"omitempty,oneof=OPTIMIZATION PROBLEM_SOLVING PREVENTIVE SEASONAL EMERGENCY"`
	Priority           Priority               `gorm:"size:10" json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Title              string                 `gorm:"size:200" json:"title" validate:"required,max=200"`
	Description        string                 `gorm:"type:text" json:"description,omitempty"`

	RecommendedQuantity decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"recommended_quantity" validate:"omitempty,gte=0"`
	Unit                string              `gorm:"size:20" json:"unit,omitempty" validate:"max=20"`
	EstimatedCost       decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"estimated_cost" validate:"omitempty,gte=0"`
	ActualCost          decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"actual_cost" validate:"omitempty,gte=0"`
	Currency            string              `gorm:"size:3" json:"currency" validate:"omitempty,len=3"`
	ExpectedROI         *float64            `json:"expected_roi,omitempty"`
	ConfidenceScore     *float64            `json:"confidence_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	Difficulty          Difficulty          `gorm:"size:20" json:"difficulty" validate:"omitempty,oneof=EASY MODERATE DIFFICULT EXPERT_REQUIRED"`
	SustainabilityScore *int                `json:"sustainability_score,omitempty" validate:"omitempty,min=1,max=10"`
	TimingWindowStart   *time.Time          `json:"timing_window_start,omitempty"`
	TimingWindowEnd     *time.Time          `json:"timing_window_end,omitempty"`

	Status              RecommendationStatus `gorm:"size:20;index" json:"status" validate:"omitempty,oneof=ACTIVE IMPLEMENTED EXPIRED REJECTED SUPERSEDED"`
	StatusReason        string               `gorm:"size:255" json:"status_reason,omitempty" validate:"max=255"`
	SupersededBy        string               `gorm:"size:64" json:"superseded_by,omitempty" validate:"max=64"`
	ValidUntil          *time.Time           `gorm:"index" json:"valid_until,omitempty"`
	ImplementationDate  *time.Time           `json:"implementation_date,omitempty"`
	ImplementationNotes string               `gorm:"type:text" json:"implementation_notes,omitempty"`
	ReviewedBy          string               `gorm:"size:100" json:"reviewed_by,omitempty" validate:"max=100"`
	ReviewDate          *time.Time           `json:"review_date,omitempty"`
	EffectivenessRating *int                 `json:"effectiveness_rating,omitempty" validate:"omitempty,min=1,max=5"`
	FollowUpDate        *time.Time           `json:"follow_up_date,omitempty"`
	FollowUpCompleted   bool                 `json:"follow_up_completed"`
	FollowUpNotes       string               `gorm:"type:text" json:"follow_up_notes,omitempty"`
	CreatedBy           string               `gorm:"size:100" json:"created_by" validate:"max=100"`
}

func (ResourceRecommendation) TableName() string { return "resource_recommendations" }

func (ResourceRecommendation) IDPrefix() string { return "RR" }

func (r *ResourceRecommendation) Initialize(now time.Time, gen Generator) {
	if r.RecommendationCode == "" {
		r.RecommendationCode = gen.NewCode("REC", now)
	}
	if r.Status == "" {
		r.Status = RecActive
	}
	if r.Difficulty == "" {
		r.Difficulty = DifficultyModerate
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if r.Currency == "" {
		r.Currency = "RWF"
	}
	if r.CreatedBy == "" {
		r.CreatedBy = "AI_SYSTEM"
	}
	if r.ValidUntil == nil {
		r.ValidUntil = timePtr(now.AddDate(0, 0, r.Category.ValidityDays()))
	}
}

type recommendationLifecycle struct {
	status              RecommendationStatus
	statusReason        string
	supersededBy        string
	implementationDate  *time.Time
	implementationNotes string
	followUpCompleted   bool
	followUpNotes       string
}

func (r *ResourceRecommendation) LifecycleState() any {
	return recommendationLifecycle{
		status:              r.Status,
		statusReason:        r.StatusReason,
		supersededBy:        r.SupersededBy,
		implementationDate:  copyTime(r.ImplementationDate),
		implementationNotes: r.ImplementationNotes,
		followUpCompleted:   r.FollowUpCompleted,
		followUpNotes:       r.FollowUpNotes,
	}
}

func (r *ResourceRecommendation) RestoreLifecycle(state any) {
	s, _ := state.(recommendationLifecycle)
	r.Status = s.status
	r.StatusReason = s.statusReason
	r.SupersededBy = s.supersededBy
	r.ImplementationDate = s.implementationDate
	r.ImplementationNotes = s.implementationNotes
	r.FollowUpCompleted = s.followUpCompleted
	r.FollowUpNotes = s.followUpNotes
}

// Recompute stamps implementation and review dates.
func (r *ResourceRecommendation) Recompute(now time.Time) error {
	if r.Status == RecImplemented && r.ImplementationDate == nil {
		r.ImplementationDate = timePtr(now)
	}
	if r.ReviewedBy != "" && r.ReviewDate == nil {
		r.ReviewDate = timePtr(now)
	}
	return nil
}

func (r *ResourceRecommendation) IsOverdue(now time.Time) bool {
	return r.Status == RecActive && r.ValidUntil != nil && now.After(*r.ValidUntil)
}

func (r *ResourceRecommendation) ExpiringSoon(now time.Time) bool {
	return r.Status == RecActive && r.ValidUntil != nil && now.AddDate(0, 0, 7).After(*r.ValidUntil)
}

func (r *ResourceRecommendation) HighConfidence() bool {
	return r.ConfidenceScore != nil && *r.ConfidenceScore >= 80
}

func (r *ResourceRecommendation) LowConfidence() bool {
	return r.ConfidenceScore != nil && *r.ConfidenceScore < 60
}

func (r *ResourceRecommendation) LowCost() bool {
	return r.EstimatedCost.Valid && r.EstimatedCost.Decimal.LessThanOrEqual(decimal.NewFromInt(10000))
}

func (r *ResourceRecommendation) HighValue() bool {
	return r.ExpectedROI != nil && *r.ExpectedROI >= 20
}

func (r *ResourceRecommendation) WithinTimingWindow(now time.Time) bool {
	if r.TimingWindowStart != nil && now.Before(*r.TimingWindowStart) {
		return false
	}
	if r.TimingWindowEnd != nil && now.After(*r.TimingWindowEnd) {
		return false
	}
	return true
}

func (r *ResourceRecommendation) FollowUpDue(now time.Time) bool {
	return r.FollowUpDate != nil && !r.FollowUpCompleted && !now.Before(*r.FollowUpDate)
}

// CostVariance is actual - estimated cost.
func (r *ResourceRecommendation) CostVariance() (decimal.Decimal, bool) {
	if !r.ActualCost.Valid || !r.EstimatedCost.Valid {
		return decimal.Zero, false
	}
	return r.ActualCost.Decimal.Sub(r.EstimatedCost.Decimal), true
}

// CostVariancePercent is the variance relative to the estimate.
func (r *ResourceRecommendation) CostVariancePercent() (decimal.Decimal, bool) {
	v, ok := r.CostVariance()
	if !ok {
		return decimal.Zero, false
	}
	return percentOf(v, r.EstimatedCost.Decimal)
}

func (r *ResourceRecommendation) CanImplement(now time.Time) bool {
	return r.Status == RecActive && !r.IsOverdue(now)
}

func (r *ResourceRecommendation) Implement(notes string, now time.Time) {
	if r.CanImplement(now) {
		r.Status = RecImplemented
		r.ImplementationDate = timePtr(now)
		r.ImplementationNotes = notes
	}
}

func (r *ResourceRecommendation) CanReject() bool { return r.Status == RecActive }

func (r *ResourceRecommendation) CanSupersede() bool { return r.Status == RecActive }

func (r *ResourceRecommendation) Reject(reason string) {
	if r.CanReject() {
		r.Status = RecRejected
		r.StatusReason = reason
	}
}

func (r *ResourceRecommendation) Supersede(byID string) {
	if r.CanSupersede() {
		r.Status = RecSuperseded
		r.SupersededBy = byID
	}
}

func (r *ResourceRecommendation) MarkAsExpired(now time.Time) {
	if r.IsOverdue(now) {
		r.Status = RecExpired
	}
}

// CanRate accepts ratings from 1 to 5.
func (r *ResourceRecommendation) CanRate(rating int) bool {
	return rating >= 1 && rating <= 5
}

func (r *ResourceRecommendation) RateEffectiveness(rating int) {
	if r.CanRate(rating) {
		r.EffectivenessRating = intPtr(rating)
	}
}

// Effective reports a rating of 3 or more.
func (r *ResourceRecommendation) Effective() bool {
	return r.EffectivenessRating != nil && *r.EffectivenessRating >= 3
}

func (r *ResourceRecommendation) UpdateActualCost(cost decimal.Decimal) {
	if !cost.IsNegative() {
		r.ActualCost = some(cost)
	}
}

func (r *ResourceRecommendation) ScheduleFollowUp(at time.Time) {
	r.FollowUpDate = timePtr(at)
	r.FollowUpCompleted = false
}

func (r *ResourceRecommendation) CanCompleteFollowUp() bool {
	return r.FollowUpDate != nil && !r.FollowUpCompleted
}

func (r *ResourceRecommendation) CompleteFollowUp(notes string, now time.Time) {
	if r.CanCompleteFollowUp() {
		r.FollowUpCompleted = true
		r.FollowUpNotes = notes
		if now.Before(*r.FollowUpDate) {
			r.FollowUpDate = timePtr(now)
		}
	}
}
