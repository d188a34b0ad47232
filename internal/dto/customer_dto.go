package dto

import "github.com/shopspring/decimal"

type CreateCustomerRequest struct {
	Name    string `json:"name"  validate:"required,min=2,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	// CreditLimit defaults to 1000 when omitted or zero.
	CreditLimit *decimal.Decimal `json:"credit_limit"`
}

// CustomerFilter matches name, email, phone, and code (substring,
// case-insensitive).
type CustomerFilter struct {
	Query string `form:"q"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type CustomerResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	DueAmount   decimal.Decimal `json:"due_amount"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	// AvailableCredit = max(0, credit_limit - due_amount)
	AvailableCredit decimal.Decimal `json:"available_credit"`
	OverLimit       bool            `json:"over_limit"`
}

type CustomerListResponse struct {
	Data  []CustomerResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ReconcileResponse reports the result of a due-amount recomputation.
type ReconcileResponse struct {
	CustomerID string          `json:"customer_id"`
	DueBefore  decimal.Decimal `json:"due_before"`
	DueAfter   decimal.Decimal `json:"due_after"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
}
