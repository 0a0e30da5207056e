package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Farm is a registered farm. Other records reference it by FarmID.
type Farm struct {
	Base

	Name        string          `gorm:"not null;size:255" json:"name" validate:"required,max=255"`
	Location    string          `gorm:"size:255" json:"location" validate:"max=255"`
	District    string          `gorm:"size:100;index" json:"district" validate:"max=100"`
	TotalArea   decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_area" validate:"gte=0"`
	Description string          `gorm:"type:text" json:"description"`
}

func (Farm) TableName() string { return "farms" }

func (Farm) IDPrefix() string { return "FM" }

// Recompute is a no-op; farms carry no derived fields.
func (f *Farm) Recompute(time.Time) error { return nil }
