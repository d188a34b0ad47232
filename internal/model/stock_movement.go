package model

import (
	"time"

	"github.com/google/uuid"
)

// StockMovement records every stock change on a product, one row per change.
// Created inside the same transaction as the change itself.
type StockMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind        string    `gorm:"not null"` // "sale" | "manual_adjust"
	Quantity    int       `gorm:"not null"` // positive = in, negative = out
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Reason      string
	ReferenceID *uuid.UUID `gorm:"type:uuid"` // sale id when Kind == "sale"
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
