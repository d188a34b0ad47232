package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/dto"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/model"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Minimal repo stubs — only the methods the workers touch do real work.

type fakeCustomerRepo struct {
	due  map[uuid.UUID]decimal.Decimal
	paid map[uuid.UUID]decimal.Decimal
}

func (r *fakeCustomerRepo) Create(context.Context, *model.Customer) error { return nil }
func (r *fakeCustomerRepo) FindByID(context.Context, uuid.UUID) (*model.Customer, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeCustomerRepo) List(context.Context, dto.CustomerFilter) ([]model.Customer, int64, error) {
	return nil, 0, nil
}
func (r *fakeCustomerRepo) Update(context.Context, *model.Customer) error { return nil }
func (r *fakeCustomerRepo) AddDueTx(*gorm.DB, uuid.UUID, decimal.Decimal, decimal.Decimal) error {
	return nil
}
func (r *fakeCustomerRepo) SetDue(_ context.Context, id uuid.UUID, due, paid decimal.Decimal) error {
	r.due[id] = due
	r.paid[id] = paid
	return nil
}

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

type fakeSaleRepo struct {
	balance repository.CustomerBalance
}

func (r *fakeSaleRepo) Create(context.Context, *gorm.DB, *model.Sale) error { return nil }
func (r *fakeSaleRepo) FindByID(context.Context, uuid.UUID) (*model.Sale, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeSaleRepo) List(context.Context, dto.SaleFilter) ([]model.Sale, int64, error) {
	return nil, 0, nil
}
func (r *fakeSaleRepo) SumBalancesByCustomer(context.Context, uuid.UUID) (*repository.CustomerBalance, error) {
	b := r.balance
	return &b, nil
}
func (r *fakeSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*fakeSaleRepo)(nil)

func TestReconcileWorker_UpdatesCustomerFigures(t *testing.T) {
	custRepo := &fakeCustomerRepo{
		due:  make(map[uuid.UUID]decimal.Decimal),
		paid: make(map[uuid.UUID]decimal.Decimal),
	}
	saleRepo := &fakeSaleRepo{balance: repository.CustomerBalance{
		OutstandingDue: decimal.NewFromInt(40),
		TotalPaid:      decimal.NewFromInt(155),
	}}
	w := NewReconcileWorker(custRepo, saleRepo)

	customerID := uuid.New()
	payload, err := json.Marshal(ReconcileJobPayload{CustomerID: customerID.String()})
	require.NoError(t, err)

	require.NoError(t, w.Process(context.Background(), payload))
	assert.True(t, custRepo.due[customerID].Equal(decimal.NewFromInt(40)))
	assert.True(t, custRepo.paid[customerID].Equal(decimal.NewFromInt(155)))
}

func TestReconcileWorker_RejectsBadPayload(t *testing.T) {
	w := NewReconcileWorker(&fakeCustomerRepo{
		due:  make(map[uuid.UUID]decimal.Decimal),
		paid: make(map[uuid.UUID]decimal.Decimal),
	}, &fakeSaleRepo{})

	err := w.Process(context.Background(), json.RawMessage(`{"customer_id":"not-a-uuid"}`))
	require.Error(t, err)
}

func TestAlertWorker_SkipsWhenMailNotConfigured(t *testing.T) {
	w := NewAlertWorker(nil, nil, "")

	payload, err := json.Marshal(StockAlertJobPayload{
		ProductID:   uuid.NewString(),
		ProductName: "Widget",
		Stock:       3,
		MinStock:    5,
	})
	require.NoError(t, err)

	// Alerts are best-effort: no SMTP config means log-and-succeed, so the
	// job is not retried or dead-lettered.
	assert.NoError(t, w.Process(context.Background(), payload))
}
