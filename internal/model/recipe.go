package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recipe is a buildable product: an ordered checklist of Sections plus a
// bill of materials expressed as Ingredients.
type Recipe struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string     `gorm:"uniqueIndex;not null"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category    *Category    `gorm:"foreignKey:CategoryID"`
	Sections    []Section    `gorm:"foreignKey:RecipeID"`
	Ingredients []Ingredient `gorm:"foreignKey:RecipeID"`
}

// CategoryName returns the category name or "Uncategorized".
func (r Recipe) CategoryName() string {
	if r.Category == nil || r.Category.Name == "" {
		return UncategorizedName
	}
	return r.Category.Name
}

// SectionIDs returns the ids of the recipe's current sections in checklist order.
func (r Recipe) SectionIDs() []string {
	ids := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		ids = append(ids, s.ID.String())
	}
	return ids
}

// UncategorizedName is the grouping label for recipes without a category.
const UncategorizedName = "Uncategorized"

// Section is one named checklist step of a recipe. Its id is stable for the
// lifetime of the section; units keep referring to it after it is removed.
type Section struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"not null"`
	Position int       `gorm:"not null;default:0"`
}

// Ingredient links a recipe to a component product.
// Quantity is consumed per finished unit.
type Ingredient struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecipeID  uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_recipe_product;not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_recipe_product;not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(12,4);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
