package repository

import (
	"context"
	"errors"
	"time"

	"prodplan/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStaleVersion is returned when a guarded write loses the version
// compare-and-swap against a concurrent writer.
var ErrStaleVersion = errors.New("plan was modified concurrently")

// PlanRepository is the Plan Store contract. Services depend on this
// interface, not on the concrete GORM implementation.
type PlanRepository interface {
	// FindByPeriod returns plans with Units and Recipe (Category, Sections)
	// preloaded, newest first.
	FindByPeriod(ctx context.Context, month, year int) ([]model.ProductionPlan, error)
	FindByYear(ctx context.Context, year int) ([]model.ProductionPlan, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductionPlan, error)
	FindByRecipePeriod(ctx context.Context, recipeID uuid.UUID, month, year int) (*model.ProductionPlan, error)
	Create(ctx context.Context, p *model.ProductionPlan) error

	// UpdateQuantityGuarded locks the plan row, loads its units, runs check on
	// the locked snapshot and, if it passes, writes qty with a version CAS.
	// Nothing is written when check fails.
	UpdateQuantityGuarded(ctx context.Context, id uuid.UUID, qty int, check func(p *model.ProductionPlan) error) (*model.ProductionPlan, error)

	// Delete removes the plan and its units.
	Delete(ctx context.Context, id uuid.UUID) error
}

type planRepo struct{ db *gorm.DB }

func NewPlanRepository(db *gorm.DB) PlanRepository { return &planRepo{db: db} }

func sectionsInOrder(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }

func unitsInOrder(db *gorm.DB) *gorm.DB { return db.Order("unit_number ASC") }

func (r *planRepo) withDetail(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Units", unitsInOrder).
		Preload("Recipe").
		Preload("Recipe.Category").
		Preload("Recipe.Sections", sectionsInOrder)
}

func (r *planRepo) FindByPeriod(ctx context.Context, month, year int) ([]model.ProductionPlan, error) {
	var plans []model.ProductionPlan
	err := r.withDetail(ctx).
		Where("month = ? AND year = ?", month, year).
		Order("created_at DESC").
		Find(&plans).Error
	return plans, err
}

func (r *planRepo) FindByYear(ctx context.Context, year int) ([]model.ProductionPlan, error) {
	var plans []model.ProductionPlan
	err := r.db.WithContext(ctx).
		Preload("Units", unitsInOrder).
		Where("year = ?", year).
		Order("month ASC, created_at DESC").
		Find(&plans).Error
	return plans, err
}

func (r *planRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductionPlan, error) {
	var p model.ProductionPlan
	if err := r.withDetail(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *planRepo) FindByRecipePeriod(ctx context.Context, recipeID uuid.UUID, month, year int) (*model.ProductionPlan, error) {
	var p model.ProductionPlan
	err := r.db.WithContext(ctx).
		Where("recipe_id = ? AND month = ? AND year = ?", recipeID, month, year).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *planRepo) Create(ctx context.Context, p *model.ProductionPlan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *planRepo) UpdateQuantityGuarded(ctx context.Context, id uuid.UUID, qty int, check func(p *model.ProductionPlan) error) (*model.ProductionPlan, error) {
	var plan model.ProductionPlan
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&plan, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("plan_id = ?", id).Order("unit_number ASC").Find(&plan.Units).Error; err != nil {
			return err
		}
		if err := check(&plan); err != nil {
			return err
		}

		res := tx.Model(&model.ProductionPlan{}).
			Where("id = ? AND version = ?", id, plan.Version).
			Updates(map[string]interface{}{
				"quantity":   qty,
				"version":    gorm.Expr("version + 1"),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleVersion
		}
		plan.Quantity = qty
		plan.Version++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", id).Delete(&model.Unit{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.ProductionPlan{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
