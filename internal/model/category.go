package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups recipes for reporting. It carries no business rules.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
