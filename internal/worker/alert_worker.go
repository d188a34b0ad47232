package worker

// alert_worker.go
// Processes low-stock alert jobs from QueueStockAlert.
// Emails the operator when a sale pushes a product to or below its minimum
// stock level. Sends run through a circuit breaker so a downed mail relay
// fast-fails instead of stalling the pool.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/infra"

	"github.com/rs/zerolog/log"
)

// StockAlertJobPayload is the job envelope sent to QueueStockAlert.
type StockAlertJobPayload struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
	MinStock    int    `json:"min_stock"`
}

type AlertWorker struct {
	mailer     *infra.Mailer
	cb         *infra.CircuitBreaker
	alertEmail string
}

func NewAlertWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, alertEmail string) *AlertWorker {
	return &AlertWorker{mailer: mailer, cb: cb, alertEmail: alertEmail}
}

// Process sends the alert email. When SMTP is not configured the alert is
// only logged and the job still succeeds.
func (w *AlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload StockAlertJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("stock_alert: invalid payload: %w", err)
	}

	if w.mailer == nil || !w.mailer.Enabled() || w.alertEmail == "" {
		log.Warn().
			Str("product", payload.ProductName).
			Int("stock", payload.Stock).
			Int("min_stock", payload.MinStock).
			Msg("stock_alert: low stock (email not configured)")
		return nil
	}

	subject := fmt.Sprintf("Low stock: %s (%d left)", payload.ProductName, payload.Stock)
	body := fmt.Sprintf(
		"Product %s is down to %d units (minimum %d).\nProduct id: %s\n",
		payload.ProductName, payload.Stock, payload.MinStock, payload.ProductID)

	err := w.cb.Execute(func() error {
		return w.mailer.Send(w.alertEmail, subject, body, "")
	})
	if err != nil {
		return fmt.Errorf("stock_alert: send email: %w", err)
	}

	log.Info().Str("product", payload.ProductName).Msg("stock_alert: email sent")
	return nil
}
