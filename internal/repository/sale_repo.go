package repository

import (
	"context"

	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/dto"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomerBalance is the aggregate of a customer's recorded sales, used by
// the reconcile path to recompute the denormalized customer figures.
type CustomerBalance struct {
	OutstandingDue decimal.Decimal
	TotalPaid      decimal.Decimal
}

type SaleRepository interface {
	// Create persists a sale header with its items in one insert; must be
	// called with a live transaction.
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)

	// SumBalancesByCustomer recomputes the customer's outstanding due (sum of
	// positive balances) and lifetime paid amount from the sales table.
	SumBalancesByCustomer(ctx context.Context, customerID uuid.UUID) (*CustomerBalance, error)

	// DB exposes the DB for transaction creation in the service layer.
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})

	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Query != "" {
		// Substring match over customer name and line-item product names,
		// resolved with joined subqueries rather than app-side filtering.
		like := "%" + filter.Query + "%"
		q = q.Where(
			`customer_id IN (SELECT id FROM customers WHERE name ILIKE ?)
			 OR id IN (SELECT sale_id FROM sale_items WHERE product_name ILIKE ?)`,
			like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Customer").Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) SumBalancesByCustomer(ctx context.Context, customerID uuid.UUID) (*CustomerBalance, error) {
	var row struct {
		Due  decimal.Decimal
		Paid decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("COALESCE(SUM(CASE WHEN balance > 0 THEN balance ELSE 0 END), 0) AS due, COALESCE(SUM(paid_amount), 0) AS paid").
		Where("customer_id = ?", customerID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &CustomerBalance{OutstandingDue: row.Due, TotalPaid: row.Paid}, nil
}
