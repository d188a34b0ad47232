package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/dto"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/idgen"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/model"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultCreditLimit applies when a new customer is created without one.
var defaultCreditLimit = decimal.NewFromInt(1000)

// CustomerService defines business operations for customers, including the
// due-amount reconciliation rule: DueAmount is recomputed as the sum of
// positive sale balances, TotalPaid as the sum of paid amounts.
type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error)
	Reconcile(ctx context.Context, id uuid.UUID) (*dto.ReconcileResponse, error)
}

type customerService struct {
	repo     repository.CustomerRepository
	saleRepo repository.SaleRepository
}

func NewCustomerService(repo repository.CustomerRepository, saleRepo repository.SaleRepository) CustomerService {
	return &customerService{repo: repo, saleRepo: saleRepo}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	creditLimit := defaultCreditLimit
	if req.CreditLimit != nil && req.CreditLimit.IsPositive() {
		creditLimit = *req.CreditLimit
	}

	c := &model.Customer{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		DueAmount:   decimal.Zero,
		CreditLimit: creditLimit,
		TotalPaid:   decimal.Zero,
	}

	var err error
	for i := 0; i < codeRetries; i++ {
		c.Code = idgen.NewCustomerCode()
		if err = s.repo.Create(ctx, c); err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customerToResponse(c), nil
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("customer not found")
	}
	return customerToResponse(c), nil
}

func (s *customerService) List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, *customerToResponse(&customers[i]))
	}
	return &dto.CustomerListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Reconcile recomputes the denormalized due/paid figures from the sales
// table. Also run asynchronously after every recorded sale.
func (s *customerService) Reconcile(ctx context.Context, id uuid.UUID) (*dto.ReconcileResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("customer not found")
	}

	bal, err := s.saleRepo.SumBalancesByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetDue(ctx, id, bal.OutstandingDue, bal.TotalPaid); err != nil {
		return nil, err
	}

	return &dto.ReconcileResponse{
		CustomerID: id.String(),
		DueBefore:  c.DueAmount,
		DueAfter:   bal.OutstandingDue,
		TotalPaid:  bal.TotalPaid,
	}, nil
}

func customerToResponse(c *model.Customer) *dto.CustomerResponse {
	available := c.CreditLimit.Sub(c.DueAmount)
	if available.IsNegative() {
		available = decimal.Zero
	}
	return &dto.CustomerResponse{
		ID:              c.ID.String(),
		Code:            c.Code,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Address:         c.Address,
		DueAmount:       c.DueAmount,
		CreditLimit:     c.CreditLimit,
		TotalPaid:       c.TotalPaid,
		AvailableCredit: available,
		OverLimit:       c.OverLimit(),
	}
}
