package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is one recorded transaction: a header plus its line items.
// Balance is always TotalAmount - PaidAmount; overpayment yields a negative
// balance and is kept as-is.
type Sale struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Reference  string    `gorm:"uniqueIndex;not null"` // idgen opaque id, printed on receipts
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`

	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaidAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Balance     decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// StockConflict marks sales where a line item exceeded the available
	// stock at recording time. The sale still commits (stock may go
	// negative) but the operator sees the flag.
	StockConflict bool `gorm:"not null;default:false"`

	CreatedAt time.Time

	Customer *Customer  `gorm:"foreignKey:CustomerID"`
	Items    []SaleItem `gorm:"foreignKey:SaleID"`
}

// SaleItem is one product-quantity-price tuple within a sale. Prices are
// captured at sale time and never re-read from Product afterwards.
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`

	ProductName  string          `gorm:"not null"` // denormalized copy
	Quantity     int             `gorm:"not null"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
