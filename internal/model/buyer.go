package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BuyerType is the commercial role of a buyer.
type BuyerType string

const (
	BuyerWholesaler  BuyerType = "WHOLESALER"
	BuyerRetailer    BuyerType = "RETAILER"
	BuyerProcessor   BuyerType = "PROCESSOR"
	BuyerExporter    BuyerType = "EXPORTER"
	BuyerCooperative BuyerType = "COOPERATIVE"
	BuyerGovernment  BuyerType = "GOVERNMENT"
)

// CreditRating is a buyer's credit grade. Symbolic names avoid the "+" of the display form.
type CreditRating string

const (
	CreditAPlus CreditRating = "A_PLUS"
	CreditA     CreditRating = "A"
	CreditBPlus CreditRating = "B_PLUS"
	CreditB     CreditRating = "B"
	CreditC     CreditRating = "C"
)

func (c CreditRating) DisplayName() string {
	switch c {
	case CreditAPlus:
		return "A+"
	case CreditBPlus:
		return "B+"
	case "":
		return "Unrated"
	}
	return string(c)
}

func (c CreditRating) Score() int {
	switch c {
	case CreditAPlus:
		return 5
	case CreditA:
		return 4
	case CreditBPlus:
		return 3
	case CreditB:
		return 2
	case CreditC:
		return 1
	}
	return 0
}

// Buyer is a purchaser of produce.
type Buyer struct {
	Base

	BuyerCode        string              `gorm:"size:30;uniqueIndex" json:"buyer_code"`
	CompanyName      string              `gorm:"size:200" json:"company_name" validate:"required,max=200"`
	ContactPerson    string              `gorm:"size:100" json:"contact_person,omitempty" validate:"max=100"`
	Email            string              `gorm:"size:150" json:"email,omitempty" validate:"omitempty,email,max=150"`
	Phone            string              `gorm:"size:30" json:"phone,omitempty" validate:"max=30"`
	District         string              `gorm:"size:100" json:"district,omitempty" validate:"max=100"`
	BuyerType        BuyerType           `gorm:"size:20" json:"buyer_type" validate:"required,oneof=WHOLESALER RETAILER PROCESSOR EXPORTER COOPERATIVE GOVERNMENT"`
	CreditRating     CreditRating        `gorm:"size:10" json:"credit_rating,omitempty" validate:"omitempty,oneof=A_PLUS A B_PLUS B C"`
	Rating           decimal.Decimal     `gorm:"type:decimal(3,1)" json:"rating" validate:"gte=0,lte=5"`
	Verified         bool                `json:"verified"`
	AnnualVolume     decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"annual_volume" validate:"omitempty,gte=0"`
	StorageCapacity  decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"storage_capacity" validate:"omitempty,gte=0"`
	CreditLimit      decimal.Decimal     `gorm:"type:decimal(18,2)" json:"credit_limit" validate:"gte=0"`
	EstablishedYear  *int                `json:"established_year,omitempty" validate:"omitempty,gte=1800"`
	PreferredCrops   string              `gorm:"type:text" json:"preferred_crops,omitempty"`
	PaymentTermsDays *int                `json:"payment_terms_days,omitempty" validate:"omitempty,gte=0"`
}

func (Buyer) TableName() string { return "buyers" }

func (Buyer) IDPrefix() string { return "BY" }

// Initialize gives new buyers the top rating until transactions say otherwise.
func (b *Buyer) Initialize(now time.Time, gen Generator) {
	if b.BuyerCode == "" {
		b.BuyerCode = gen.NewCode("BUY", now)
	}
	if b.Rating.IsZero() {
		b.Rating = decimal.NewFromInt(5)
	}
}

func (b *Buyer) Recompute(time.Time) error { return nil }

func (b *Buyer) HighVolume() bool {
	return b.AnnualVolume.Valid && b.AnnualVolume.Decimal.GreaterThan(decimal.NewFromInt(1000))
}

func (b *Buyer) LargeCapacity() bool {
	return b.StorageCapacity.Valid && b.StorageCapacity.Decimal.GreaterThan(decimal.NewFromInt(500))
}

func (b *Buyer) Premium() bool {
	return b.Verified && b.Rating.GreaterThanOrEqual(decimal.NewFromInt(4))
}

func (b *Buyer) BusinessAge(now time.Time) (int, bool) {
	if b.EstablishedYear == nil {
		return 0, false
	}
	return now.Year() - *b.EstablishedYear, true
}

func (b *Buyer) Experienced(now time.Time) bool {
	age, ok := b.BusinessAge(now)
	return ok && age >= 5
}

func (b *Buyer) GoodCredit() bool {
	return b.CreditRating.Score() >= 3
}

func (b *Buyer) HighCreditLimit() bool {
	return b.CreditLimit.GreaterThan(decimal.NewFromInt(50000))
}

func (b *Buyer) NeedsVerification() bool {
	return !b.Verified
}

func (b *Buyer) ProfileSummary() string {
	return fmt.Sprintf("%s - %s - Rating %s - Credit %s",
		b.CompanyName, displayName(string(b.BuyerType)), b.Rating.StringFixed(1), b.CreditRating.DisplayName())
}
