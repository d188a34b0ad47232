package repository

import (
	"context"

	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/dto"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context, filter dto.CustomerFilter) ([]model.Customer, int64, error)
	Update(ctx context.Context, c *model.Customer) error

	// AddDueTx bumps the denormalized due/total-paid figures inside a sale
	// transaction using SQL expressions (no read-modify-write race).
	AddDueTx(tx *gorm.DB, id uuid.UUID, due, paid decimal.Decimal) error

	// SetDue overwrites the denormalized figures; used by the reconcile path
	// after recomputing from the sales table.
	SetDue(ctx context.Context, id uuid.UUID, due, paid decimal.Decimal) error
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) List(ctx context.Context, filter dto.CustomerFilter) ([]model.Customer, int64, error) {
	var customers []model.Customer
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Customer{})

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ? OR code ILIKE ?",
			like, like, like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&customers).Error
	return customers, total, err
}

func (r *customerRepo) Update(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *customerRepo) AddDueTx(tx *gorm.DB, id uuid.UUID, due, paid decimal.Decimal) error {
	return tx.Model(&model.Customer{}).Where("id = ?", id).Updates(map[string]interface{}{
		"due_amount": gorm.Expr("due_amount + ?", due),
		"total_paid": gorm.Expr("total_paid + ?", paid),
	}).Error
}

func (r *customerRepo) SetDue(ctx context.Context, id uuid.UUID, due, paid decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Customer{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"due_amount": due,
			"total_paid": paid,
		}).Error
}
