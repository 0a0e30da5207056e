package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smart-agriculture/internal/clock"
	"smart-agriculture/internal/model"
	"smart-agriculture/internal/validation"
)

// ErrNotFound is returned when a record does not exist or was deleted.
var ErrNotFound = errors.New("record not found")

// Scope narrows a list query.
type Scope = func(*gorm.DB) *gorm.DB

// Eq filters on column = value. The column name is quoted by gorm.
func Eq(column string, value interface{}) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	}
}

// Page limits the result set. A non-positive limit leaves it unbounded.
func Page(limit, offset int) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if limit > 0 {
			db = db.Limit(limit)
		}
		if offset > 0 {
			db = db.Offset(offset)
		}
		return db
	}
}

// Store is the write path for one entity kind. Every write validates the record,
// runs its lifecycle and derived-field recomputation, and only then touches the
// database, so a failing record is never persisted.
type Store[T any, PT interface {
	*T
	model.Entity
}] struct {
	db    *gorm.DB
	clock clock.Clock
	ids   model.Generator
}

// NewStore creates a store for the entity kind T.
func NewStore[T any, PT interface {
	*T
	model.Entity
}](db *gorm.DB, clk clock.Clock, ids model.Generator) *Store[T, PT] {
	return &Store[T, PT]{db: db, clock: clk, ids: ids}
}

// Table returns the entity's table name.
func (s *Store[T, PT]) Table() string {
	return PT(new(T)).TableName()
}

// Create validates and inserts a new record.
func (s *Store[T, PT]) Create(ctx context.Context, rec PT) error {
	if err := validation.Struct(rec); err != nil {
		return err
	}
	if err := model.PrepareCreate(rec, s.clock.Now(), s.ids); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("insert %s: %w", rec.TableName(), err)
	}
	return nil
}

// Update validates, recomputes and saves every column of an existing record.
func (s *Store[T, PT]) Update(ctx context.Context, rec PT) error {
	if err := validation.Struct(rec); err != nil {
		return err
	}
	if err := model.PrepareUpdate(rec, s.clock.Now()); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Model(rec).Select("*").Updates(rec)
	if res.Error != nil {
		return fmt.Errorf("update %s %s: %w", rec.TableName(), rec.Meta().ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", rec.TableName(), rec.Meta().ID, ErrNotFound)
	}
	return nil
}

// Get loads a record by id.
func (s *Store[T, PT]) Get(ctx context.Context, id string) (PT, error) {
	var rec T
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s %s: %w", s.Table(), id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", s.Table(), id, err)
	}
	return PT(&rec), nil
}

// Delete soft-deletes a record by id.
func (s *Store[T, PT]) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(PT(new(T)), "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete %s %s: %w", s.Table(), id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", s.Table(), id, ErrNotFound)
	}
	return nil
}

// List returns records matching every scope, newest first.
func (s *Store[T, PT]) List(ctx context.Context, scopes ...Scope) ([]T, error) {
	var out []T
	err := s.db.WithContext(ctx).
		Scopes(scopes...).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.Table(), err)
	}
	return out, nil
}
