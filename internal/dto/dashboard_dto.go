package dto

import "github.com/shopspring/decimal"

// DashboardSummary aggregates the headline figures shown on the landing tab.
// Served cache-aside from Redis with a short TTL; invalidated on every write
// that changes the underlying numbers.
type DashboardSummary struct {
	ProductCount  int64           `json:"product_count"`
	CategoryCount int64           `json:"category_count"`
	CustomerCount int64           `json:"customer_count"`
	SaleCount     int64           `json:"sale_count"`

	InventoryCost    decimal.Decimal `json:"inventory_cost"`
	ExpectedRevenue  decimal.Decimal `json:"expected_revenue"`
	ExpectedProfit   decimal.Decimal `json:"expected_profit"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	TotalCollected   decimal.Decimal `json:"total_collected"`
	OutstandingDue   decimal.Decimal `json:"outstanding_due"`
	LowStockProducts int64           `json:"low_stock_products"`
}
