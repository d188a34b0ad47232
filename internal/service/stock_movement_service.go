package service

import (
	"context"

	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/dto"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/model"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/repository"
)

// StockMovementService lists the audit trail of stock changes.
type StockMovementService interface {
	List(ctx context.Context, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error)
}

type stockMovementService struct {
	repo repository.StockMovementRepository
}

func NewStockMovementService(repo repository.StockMovementRepository) StockMovementService {
	return &stockMovementService{repo: repo}
}

func (s *stockMovementService) List(ctx context.Context, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	movements, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(movements))
	for i := range movements {
		items = append(items, movementToResponse(&movements[i]))
	}
	return &dto.StockMovementListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func movementToResponse(m *model.StockMovement) dto.StockMovementResponse {
	name := ""
	if m.Product != nil {
		name = m.Product.Name
	}
	var refID *string
	if m.ReferenceID != nil {
		s := m.ReferenceID.String()
		refID = &s
	}
	return dto.StockMovementResponse{
		ID:          m.ID.String(),
		ProductID:   m.ProductID.String(),
		ProductName: name,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      m.Reason,
		ReferenceID: refID,
		CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
