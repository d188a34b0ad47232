package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/dto"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/idgen"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/infra"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/model"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/repository"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService records and lists sales. Recording is a single ACID
// transaction: header + items + stock decrements + movement rows + customer
// due bump either all commit or none do.
type SaleService interface {
	Record(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	// Receipt renders the sale as a PDF and returns the file path.
	Receipt(ctx context.Context, id uuid.UUID) (string, error)
}

type saleService struct {
	repo         repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	movementRepo repository.StockMovementRepository
	dispatcher   *worker.Dispatcher
	caches       CacheInvalidator
	pdfPath      string
}

func NewSaleService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	movementRepo repository.StockMovementRepository,
	dispatcher *worker.Dispatcher,
	caches CacheInvalidator,
	pdfPath string,
) SaleService {
	return &saleService{
		repo:         repo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		movementRepo: movementRepo,
		dispatcher:   dispatcher,
		caches:       caches,
		pdfPath:      pdfPath,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Record runs the full sale workflow:
//  1. Validate customer and line items (both are hard preconditions — a
//     missing customer or an empty item list is an explicit error, never a
//     silent no-op).
//  2. Resolve each product; capture its cost price and either the stored
//     selling price or the operator's per-line override; compute line totals.
//  3. Inside one transaction: insert header + items, decrement stock with an
//     atomic SQL expression, record a StockMovement per line, bump the
//     customer's due/total-paid figures.
//  4. After commit: enqueue the due-amount reconcile job, enqueue low-stock
//     alerts for any product that crossed its minimum, drop stale caches.
//
// Stock is never clamped: a line exceeding available stock still commits
// (stock goes negative) but the sale is flagged StockConflict so the
// operator can follow up.
func (s *saleService) Record(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer_id: %w", err)
	}
	if len(req.Items) == 0 {
		return nil, errors.New("a sale needs at least one line item")
	}
	if req.PaidAmount.IsNegative() {
		return nil, errors.New("paid_amount cannot be negative")
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("customer %s not found", req.CustomerID)
	}

	// Resolve products and compute totals (pre-flight, outside the tx).
	type resolvedItem struct {
		productID    uuid.UUID
		name         string
		quantity     int
		costPrice    decimal.Decimal
		sellingPrice decimal.Decimal
		total        decimal.Decimal
		stockBefore  int
		minStock     int
	}

	var resolved []resolvedItem
	totalAmount := decimal.Zero
	stockConflict := false

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id: %w", err)
		}
		if item.Quantity < 1 {
			return nil, errors.New("line item quantity must be at least 1")
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("product %s not found", item.ProductID)
		}

		sellingPrice := p.SellingPrice
		if item.SellingPrice != nil {
			if item.SellingPrice.IsNegative() {
				return nil, errors.New("selling_price override cannot be negative")
			}
			sellingPrice = *item.SellingPrice
		}
		if p.Stock < item.Quantity {
			stockConflict = true
		}

		lineTotal := sellingPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		totalAmount = totalAmount.Add(lineTotal)
		resolved = append(resolved, resolvedItem{
			productID:    pid,
			name:         p.Name,
			quantity:     item.Quantity,
			costPrice:    p.CostPrice,
			sellingPrice: sellingPrice,
			total:        lineTotal,
			stockBefore:  p.Stock,
			minStock:     p.MinStock,
		})
	}

	balance := totalAmount.Sub(req.PaidAmount)

	var sale model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		sale = model.Sale{
			Reference:     idgen.NewReference(),
			CustomerID:    customerID,
			TotalAmount:   totalAmount,
			PaidAmount:    req.PaidAmount,
			Balance:       balance,
			StockConflict: stockConflict,
		}
		for _, r := range resolved {
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID:    r.productID,
				ProductName:  r.name,
				Quantity:     r.quantity,
				CostPrice:    r.costPrice,
				SellingPrice: r.sellingPrice,
				TotalPrice:   r.total,
			})
		}

		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return err
		}

		for _, r := range resolved {
			if err := s.productRepo.AdjustStockTx(tx, r.productID, -r.quantity); err != nil {
				return fmt.Errorf("decrement stock of %s: %w", r.name, err)
			}

			saleRef := sale.ID
			mov := &model.StockMovement{
				ProductID:   r.productID,
				Kind:        "sale",
				Quantity:    -r.quantity,
				StockBefore: r.stockBefore,
				StockAfter:  r.stockBefore - r.quantity,
				Reason:      fmt.Sprintf("Sale %s", sale.Reference),
				ReferenceID: &saleRef,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}

		// Bump the denormalized customer figures. Only an unpaid remainder
		// adds to the due amount; overpayment never reduces it here (the
		// reconcile job recomputes from source either way).
		due := balance
		if due.IsNegative() {
			due = decimal.Zero
		}
		return s.customerRepo.AddDueTx(tx, customerID, due, req.PaidAmount)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Post-commit, best-effort: reconcile job, low-stock alerts, cache drop.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueReconcile(ctx, worker.ReconcileJobPayload{
			CustomerID: customerID.String(),
		})
		for _, r := range resolved {
			after := r.stockBefore - r.quantity
			if after <= r.minStock && r.stockBefore > r.minStock {
				_ = s.dispatcher.EnqueueStockAlert(ctx, worker.StockAlertJobPayload{
					ProductID:   r.productID.String(),
					ProductName: r.name,
					Stock:       after,
					MinStock:    r.minStock,
				})
			}
		}
	}
	if s.caches != nil {
		s.caches.InvalidateDashboard(ctx)
		for _, r := range resolved {
			s.caches.InvalidateProduct(ctx, r.productID)
		}
	}

	resp := saleToResponse(&sale)
	resp.CustomerName = customer.Name
	return resp, nil
}

func (s *saleService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("sale not found")
	}
	return saleToResponse(sale), nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *saleService) Receipt(ctx context.Context, id uuid.UUID) (string, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", errors.New("sale not found")
	}
	return infra.GenerateReceiptPDF(sale, s.pdfPath)
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:    item.ProductID.String(),
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			CostPrice:    item.CostPrice,
			SellingPrice: item.SellingPrice,
			TotalPrice:   item.TotalPrice,
		})
	}
	customerName := ""
	if s.Customer != nil {
		customerName = s.Customer.Name
	}
	return &dto.SaleResponse{
		ID:            s.ID.String(),
		Reference:     s.Reference,
		CustomerID:    s.CustomerID.String(),
		CustomerName:  customerName,
		Items:         items,
		TotalAmount:   s.TotalAmount,
		PaidAmount:    s.PaidAmount,
		Balance:       s.Balance,
		StockConflict: s.StockConflict,
		CreatedAt:     s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
