package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/dto"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var customerCodeRe = regexp.MustCompile(`^C\d{5}$`)

func newCustomerFixture() (CustomerService, *stubCustomerRepo, *stubSaleRepo) {
	customers := newStubCustomerRepo()
	sales := newStubSaleRepo()
	return NewCustomerService(customers, sales), customers, sales
}

func TestCreateCustomer_DefaultCreditLimit(t *testing.T) {
	svc, _, _ := newCustomerFixture()

	resp, err := svc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:  "Alice",
		Email: "alice@example.com",
	})
	require.NoError(t, err)

	assert.Regexp(t, customerCodeRe, resp.Code)
	assert.True(t, resp.CreditLimit.Equal(decimal.NewFromInt(1000)))
	assert.True(t, resp.DueAmount.Equal(decimal.Zero))
	assert.True(t, resp.AvailableCredit.Equal(decimal.NewFromInt(1000)))
	assert.False(t, resp.OverLimit)
}

func TestCreateCustomer_ExplicitCreditLimit(t *testing.T) {
	svc, _, _ := newCustomerFixture()

	limit := decimal.NewFromInt(5000)
	resp, err := svc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:        "Alice",
		Email:       "alice@example.com",
		CreditLimit: &limit,
	})
	require.NoError(t, err)
	assert.True(t, resp.CreditLimit.Equal(decimal.NewFromInt(5000)))
}

func TestGetCustomer_OverLimit(t *testing.T) {
	svc, customers, _ := newCustomerFixture()
	ctx := context.Background()

	c := &model.Customer{
		Code:        "C00001",
		Name:        "Alice",
		Email:       "alice@example.com",
		DueAmount:   decimal.NewFromInt(1200),
		CreditLimit: decimal.NewFromInt(1000),
	}
	require.NoError(t, customers.Create(ctx, c))

	resp, err := svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, resp.OverLimit)
	// Available credit bottoms out at zero, it never goes negative.
	assert.True(t, resp.AvailableCredit.Equal(decimal.Zero))
}

func TestReconcile_RecomputesFromSales(t *testing.T) {
	svc, customers, sales := newCustomerFixture()
	ctx := context.Background()

	c := &model.Customer{
		Code:        "C00001",
		Name:        "Alice",
		Email:       "alice@example.com",
		DueAmount:   decimal.NewFromInt(999), // stale running figure
		CreditLimit: decimal.NewFromInt(1000),
	}
	require.NoError(t, customers.Create(ctx, c))

	// Two outstanding sales and one overpaid sale. Only positive balances
	// count toward the due amount; every payment counts toward total paid.
	seed := []struct {
		total, paid int64
	}{
		{100, 60},  // balance 40
		{50, 50},   // balance 0
		{30, 45},   // balance -15, ignored for due
	}
	for _, s := range seed {
		total := decimal.NewFromInt(s.total)
		paid := decimal.NewFromInt(s.paid)
		require.NoError(t, sales.Create(ctx, nil, &model.Sale{
			Reference:   uuid.NewString(),
			CustomerID:  c.ID,
			TotalAmount: total,
			PaidAmount:  paid,
			Balance:     total.Sub(paid),
		}))
	}

	resp, err := svc.Reconcile(ctx, c.ID)
	require.NoError(t, err)

	assert.True(t, resp.DueBefore.Equal(decimal.NewFromInt(999)))
	assert.True(t, resp.DueAfter.Equal(decimal.NewFromInt(40)))
	assert.True(t, resp.TotalPaid.Equal(decimal.NewFromInt(155)))

	stored, err := customers.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, stored.DueAmount.Equal(decimal.NewFromInt(40)))
	assert.True(t, stored.TotalPaid.Equal(decimal.NewFromInt(155)))
}

func TestReconcile_UnknownCustomer(t *testing.T) {
	svc, _, _ := newCustomerFixture()
	_, err := svc.Reconcile(context.Background(), uuid.New())
	require.Error(t, err)
}
