package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is a buyer account carrying a running due balance.
// DueAmount is denormalized (sum of outstanding sale balances); it is bumped
// inside the sale transaction and periodically recomputed from the sales
// table by the reconcile worker.
type Customer struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code    string    `gorm:"uniqueIndex;not null"` // "C#####", generated by idgen
	Name    string    `gorm:"index;not null"`
	Email   string    `gorm:"not null"`
	Phone   string
	Address string

	DueAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreditLimit decimal.Decimal `gorm:"type:decimal(12,2);not null;default:1000"`
	TotalPaid   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OverLimit reports whether the customer's due balance exceeds their credit limit.
func (c *Customer) OverLimit() bool {
	return c.DueAmount.GreaterThan(c.CreditLimit)
}
