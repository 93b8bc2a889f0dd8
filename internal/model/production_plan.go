package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProductionPlan is the monthly target for one recipe.
// (RecipeID, Month, Year) is unique.
type ProductionPlan struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_plan_period"`
	Month     int       `gorm:"not null;uniqueIndex:idx_plan_period"`
	Year      int       `gorm:"not null;uniqueIndex:idx_plan_period"`
	Quantity  int       `gorm:"not null"`
	// Version is bumped on every quantity write; used as a compare-and-swap token.
	Version   int       `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Units  []Unit  `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
}

// Unit is one physical item being built under a plan. Completed holds
// section ids as written by the checklist collaborator; it is never
// validated against the recipe on write.
type Unit struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlanID       uuid.UUID `gorm:"type:uuid;not null;index"`
	UnitNumber   int       `gorm:"not null"`
	SerialNumber *string
	CustomID     *string
	Completed    datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
	AssembledAt  *time.Time
	IsPacked     bool `gorm:"not null;default:false"`
	IsSold       bool `gorm:"not null;default:false"`
	Customer     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductIdentifier returns the custom id when present, else the serial number.
func (u Unit) ProductIdentifier() string {
	if u.CustomID != nil && *u.CustomID != "" {
		return *u.CustomID
	}
	if u.SerialNumber != nil {
		return *u.SerialNumber
	}
	return ""
}
