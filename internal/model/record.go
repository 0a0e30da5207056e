package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Base carries the identity and audit columns shared by every record.
// Timestamps come from the injected clock, never from gorm.
type Base struct {
	ID        string         `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time      `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:false" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// Meta exposes the shared columns of an embedding record.
func (b *Base) Meta() *Base {
	return b
}

// Entity is a persisted record with derived fields.
type Entity interface {
	TableName() string
	IDPrefix() string
	Meta() *Base
	// Recompute refreshes derived fields from the record's own inputs.
	// It must be idempotent.
	Recompute(now time.Time) error
}

// Generator issues identifiers and business codes.
type Generator interface {
	NewID(prefix string) string
	NewCode(prefix string, now time.Time) string
}

// Initializer is implemented by records with create-only defaults.
type Initializer interface {
	Initialize(now time.Time, gen Generator)
}

// Stateful is implemented by records whose lifecycle columns move only through status actions.
// RestoreLifecycle(nil) clears them to their zero values.
type Stateful interface {
	LifecycleState() any
	RestoreLifecycle(state any)
}

// KeepLifecycle snapshots e's lifecycle columns and returns a func that puts them back.
func KeepLifecycle(e Entity) func() {
	s, ok := e.(Stateful)
	if !ok {
		return func() {}
	}
	state := s.LifecycleState()
	return func() { s.RestoreLifecycle(state) }
}

// ResetLifecycle clears e's lifecycle columns so create-time defaults apply.
func ResetLifecycle(e Entity) {
	if s, ok := e.(Stateful); ok {
		s.RestoreLifecycle(nil)
	}
}

// PrepareCreate runs the create lifecycle: identity, timestamps, defaults, derived fields.
func PrepareCreate(e Entity, now time.Time, gen Generator) error {
	meta := e.Meta()
	if meta.ID == "" {
		meta.ID = gen.NewID(e.IDPrefix())
	}
	meta.CreatedAt = now
	meta.UpdatedAt = now

	if init, ok := e.(Initializer); ok {
		init.Initialize(now, gen)
	}

	if err := e.Recompute(now); err != nil {
		return fmt.Errorf("%s %s: %w", e.TableName(), meta.ID, err)
	}
	return nil
}

// PrepareUpdate runs the update lifecycle: refresh UpdatedAt and derived fields.
func PrepareUpdate(e Entity, now time.Time) error {
	meta := e.Meta()
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = now
	}
	meta.UpdatedAt = now

	if err := e.Recompute(now); err != nil {
		return fmt.Errorf("%s %s: %w", e.TableName(), meta.ID, err)
	}
	return nil
}

// All returns a zero value of every entity kind, in migration order.
func All() []Entity {
	return []Entity{
		&Farm{},
		&Crop{},
		&Buyer{},
		&CropProduction{},
		&FertilizerUsage{},
		&IrrigationData{},
		&MarketPrice{},
		&Inventory{},
		&SupplyChain{},
		&Transaction{},
		&EnvironmentalData{},
		&FoodSecurityAlert{},
		&ProductionPrediction{},
		&ResourceRecommendation{},
		&PolicyData{},
		&ClimateImpact{},
	}
}
