package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name         string          `json:"name"          validate:"required,min=2,max=120"`
	Description  *string         `json:"description"`
	Category     string          `json:"category"`
	CostPrice    decimal.Decimal `json:"cost_price"    validate:"required"`
	SellingPrice decimal.Decimal `json:"selling_price" validate:"required"`
	Stock        int             `json:"stock"         validate:"min=0"`
	MinStock     int             `json:"min_stock"     validate:"min=0"`
}

type UpdateProductRequest struct {
	Name         *string          `json:"name"          validate:"omitempty,min=2,max=120"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	MinStock     *int             `json:"min_stock"     validate:"omitempty,min=0"`
}

// AdjustStockRequest applies a signed delta to a product's stock count.
type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ProductFilter is bound from the query string of GET /v1/products.
// Query matches name, code, description, and category (substring,
// case-insensitive).
type ProductFilter struct {
	Query    string `form:"q"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Description     *string         `json:"description"`
	Category        string          `json:"category"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	Stock           int             `json:"stock"`
	MinStock        int             `json:"min_stock"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	ExpectedRevenue decimal.Decimal `json:"expected_revenue"`
	ExpectedProfit  decimal.Decimal `json:"expected_profit"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// PriceLookupResponse is returned by GET /v1/products/code/:code — the
// cached quick-lookup used at the sale form.
type PriceLookupResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Stock        int             `json:"stock"`
}
