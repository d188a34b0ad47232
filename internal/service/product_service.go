package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/dto"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/idgen"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/model"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// codeRetries bounds regeneration attempts when a generated code collides
// with the unique index.
const codeRetries = 3

// ProductService defines the business logic contract for products.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	LookupByCode(ctx context.Context, code string) (*dto.PriceLookupResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error)
}

type productService struct {
	repo         repository.ProductRepository
	movementRepo repository.StockMovementRepository
	cache        *RedisCache
}

func NewProductService(repo repository.ProductRepository, movementRepo repository.StockMovementRepository, cache *RedisCache) ProductService {
	return &productService{repo: repo, movementRepo: movementRepo, cache: cache}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.CostPrice.IsNegative() || req.SellingPrice.IsNegative() {
		return nil, errors.New("prices cannot be negative")
	}
	category := req.Category
	if category == "" {
		category = "Other"
	}

	p := &model.Product{
		Name:         req.Name,
		Description:  req.Description,
		Category:     category,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		Stock:        req.Stock,
		MinStock:     req.MinStock,
	}
	p.RecalcDerived()

	// The generator does not guarantee uniqueness; the unique index does.
	// Retry a few times on a duplicate-key insert before giving up.
	var err error
	for i := 0; i < codeRetries; i++ {
		p.Code = idgen.NewProductCode()
		if err = s.repo.Create(ctx, p); err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.cache.InvalidateDashboard(ctx)
	return productToResponse(p), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	return productToResponse(p), nil
}

// LookupByCode is the quick lookup used by the sale form — cache-aside with a
// short TTL, keyed by product id after resolving the code.
func (s *productService) LookupByCode(ctx context.Context, code string) (*dto.PriceLookupResponse, error) {
	p, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, errors.New("product not found")
	}

	key := keyProductPrefix + p.ID.String()
	if data, ok := s.cache.GetJSON(ctx, key); ok {
		var cached dto.PriceLookupResponse
		if json.Unmarshal(data, &cached) == nil {
			return &cached, nil
		}
	}

	resp := &dto.PriceLookupResponse{
		ID:           p.ID.String(),
		Code:         p.Code,
		Name:         p.Name,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		Stock:        p.Stock,
	}
	if data, err := json.Marshal(resp); err == nil {
		s.cache.SetJSON(ctx, key, data, productTTL)
	}
	return resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.CostPrice != nil {
		if req.CostPrice.IsNegative() {
			return nil, errors.New("cost_price cannot be negative")
		}
		p.CostPrice = *req.CostPrice
	}
	if req.SellingPrice != nil {
		if req.SellingPrice.IsNegative() {
			return nil, errors.New("selling_price cannot be negative")
		}
		p.SellingPrice = *req.SellingPrice
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	p.RecalcDerived()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.cache.InvalidateProduct(ctx, p.ID)
	s.cache.InvalidateDashboard(ctx)
	return productToResponse(p), nil
}

// AdjustStock applies a signed manual correction and records the movement in
// one transaction.
func (s *productService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	if p.Stock+req.Delta < 0 {
		return nil, fmt.Errorf("adjustment would leave negative stock (current %d, delta %d)", p.Stock, req.Delta)
	}

	stockBefore := p.Stock
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.AdjustStockTx(tx, id, req.Delta); err != nil {
			return err
		}
		return s.movementRepo.CreateTx(tx, &model.StockMovement{
			ProductID:   id,
			Kind:        "manual_adjust",
			Quantity:    req.Delta,
			StockBefore: stockBefore,
			StockAfter:  stockBefore + req.Delta,
			Reason:      req.Reason,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	s.cache.InvalidateProduct(ctx, id)
	s.cache.InvalidateDashboard(ctx)

	p, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:              p.ID.String(),
		Code:            p.Code,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		CostPrice:       p.CostPrice,
		SellingPrice:    p.SellingPrice,
		Stock:           p.Stock,
		MinStock:        p.MinStock,
		TotalCost:       p.TotalCost,
		ExpectedRevenue: p.ExpectedRevenue,
		ExpectedProfit:  p.ExpectedProfit,
	}
}
