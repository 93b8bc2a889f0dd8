package repository

import (
	"context"

	"prodplan/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository is the read-only Catalog Store: recipes with their
// sections, categories, ingredients and component products.
type CatalogRepository interface {
	ListRecipes(ctx context.Context) ([]model.Recipe, error)
	FindRecipeByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	// FindRecipesByNames matches names exactly (database collation).
	FindRecipesByNames(ctx context.Context, names []string) ([]model.Recipe, error)
	FindRecipesWithIngredients(ctx context.Context, ids []uuid.UUID) ([]model.Recipe, error)
}

type catalogRepo struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) CatalogRepository { return &catalogRepo{db: db} }

func (r *catalogRepo) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	var list []model.Recipe
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Sections", sectionsInOrder).
		Order("name ASC").
		Find(&list).Error
	return list, err
}

func (r *catalogRepo) FindRecipeByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var rec model.Recipe
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Sections", sectionsInOrder).
		First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *catalogRepo) FindRecipesByNames(ctx context.Context, names []string) ([]model.Recipe, error) {
	if len(names) == 0 {
		return []model.Recipe{}, nil
	}
	var list []model.Recipe
	err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&list).Error
	return list, err
}

func (r *catalogRepo) FindRecipesWithIngredients(ctx context.Context, ids []uuid.UUID) ([]model.Recipe, error) {
	if len(ids) == 0 {
		return []model.Recipe{}, nil
	}
	var list []model.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Ingredients.Product").
		Where("id IN ?", ids).
		Find(&list).Error
	return list, err
}
