package repository

import (
	"context"

	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/dto"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/model"

	"gorm.io/gorm"
)

// DashboardRepository aggregates the headline figures across all tables.
type DashboardRepository interface {
	Summary(ctx context.Context) (*dto.DashboardSummary, error)
}

type dashboardRepo struct{ db *gorm.DB }

func NewDashboardRepository(db *gorm.DB) DashboardRepository { return &dashboardRepo{db: db} }

func (r *dashboardRepo) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	var s dto.DashboardSummary
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Product{}).Count(&s.ProductCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Category{}).Count(&s.CategoryCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Customer{}).Count(&s.CustomerCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Sale{}).Count(&s.SaleCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Product{}).Where("stock <= min_stock").Count(&s.LowStockProducts).Error; err != nil {
		return nil, err
	}

	// Inventory figures come from the live columns, not the per-product
	// derived snapshots, so the summary is correct even mid-recompute.
	if err := db.Model(&model.Product{}).
		Select(`COALESCE(SUM(cost_price * stock), 0)              AS inventory_cost,
			COALESCE(SUM(selling_price * stock), 0)           AS expected_revenue,
			COALESCE(SUM((selling_price - cost_price) * stock), 0) AS expected_profit`).
		Scan(&s).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.Sale{}).
		Select(`COALESCE(SUM(total_amount), 0)                               AS total_sales,
			COALESCE(SUM(paid_amount), 0)                                AS total_collected,
			COALESCE(SUM(CASE WHEN balance > 0 THEN balance ELSE 0 END), 0) AS outstanding_due`).
		Scan(&s).Error; err != nil {
		return nil, err
	}

	return &s, nil
}
