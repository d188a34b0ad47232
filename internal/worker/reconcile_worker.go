package worker

// reconcile_worker.go
// Processes due-amount reconcile jobs from QueueReconcile.
// The sale transaction bumps the customer's denormalized DueAmount/TotalPaid
// incrementally; this worker recomputes both from the sales table (source of
// truth) shortly after, so drift never survives for long.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReconcileJobPayload is the job envelope sent to QueueReconcile.
type ReconcileJobPayload struct {
	CustomerID string `json:"customer_id"`
}

type ReconcileWorker struct {
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
}

func NewReconcileWorker(customerRepo repository.CustomerRepository, saleRepo repository.SaleRepository) *ReconcileWorker {
	return &ReconcileWorker{customerRepo: customerRepo, saleRepo: saleRepo}
}

// Process recomputes the customer's due and paid figures from recorded sales.
func (w *ReconcileWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReconcileJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("reconcile: invalid payload: %w", err)
	}
	id, err := uuid.Parse(payload.CustomerID)
	if err != nil {
		return fmt.Errorf("reconcile: invalid customer_id: %w", err)
	}

	bal, err := w.saleRepo.SumBalancesByCustomer(ctx, id)
	if err != nil {
		return fmt.Errorf("reconcile: sum balances: %w", err)
	}
	if err := w.customerRepo.SetDue(ctx, id, bal.OutstandingDue, bal.TotalPaid); err != nil {
		return fmt.Errorf("reconcile: update customer: %w", err)
	}

	log.Info().
		Str("customer_id", payload.CustomerID).
		Str("due", bal.OutstandingDue.String()).
		Str("paid", bal.TotalPaid.String()).
		Msg("reconcile: customer figures recomputed")
	return nil
}
