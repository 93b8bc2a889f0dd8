package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is a stocked component consumed by recipe ingredients.
type Product struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string    `gorm:"index;not null"`
	Stock             int       `gorm:"not null;default:0"`
	LowStockThreshold int       `gorm:"not null;default:5"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
