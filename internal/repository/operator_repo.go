package repository

import (
	"context"

	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/model"

	"gorm.io/gorm"
)

type OperatorRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.Operator, error)
}

type operatorRepo struct{ db *gorm.DB }

func NewOperatorRepository(db *gorm.DB) OperatorRepository { return &operatorRepo{db: db} }

func (r *operatorRepo) FindByUsername(ctx context.Context, username string) (*model.Operator, error) {
	var op model.Operator
	err := r.db.WithContext(ctx).Where("username = ? AND active = true", username).First(&op).Error
	if err != nil {
		return nil, err
	}
	return &op, nil
}
