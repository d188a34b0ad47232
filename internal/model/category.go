package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies products by label. Products reference categories by
// name only; deleting a category never cascades.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	CreatedAt   time.Time
}

// TableName keeps the table name stable regardless of GORM pluralization rules.
func (Category) TableName() string { return "categories" }
