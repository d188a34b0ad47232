package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item tracked by the shop.
// Category is a free-text label, deliberately NOT a foreign key to Category —
// a product may name a category that has no matching row.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code        string    `gorm:"uniqueIndex;not null"` // "P#####", generated by idgen
	Name        string    `gorm:"index;not null"`
	Description *string
	Category    string          `gorm:"not null;default:'Other'"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	MinStock    int             `gorm:"not null;default:5"`

	// Derived figures. Maintained snapshots: recomputed inside the same
	// transaction whenever cost, price, or stock changes so they cannot
	// silently diverge from the source columns.
	TotalCost       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ExpectedRevenue decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ExpectedProfit  decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecalcDerived refreshes TotalCost, ExpectedRevenue, and ExpectedProfit from
// the current cost, price, and stock.
func (p *Product) RecalcDerived() {
	qty := decimal.NewFromInt(int64(p.Stock))
	p.TotalCost = p.CostPrice.Mul(qty)
	p.ExpectedRevenue = p.SellingPrice.Mul(qty)
	p.ExpectedProfit = p.ExpectedRevenue.Sub(p.TotalCost)
}
