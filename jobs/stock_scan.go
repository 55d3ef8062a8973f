package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/meridian-ims/meridian-ims/internal/dashboard"
)

const defaultScanLimit = 50

// StockScanJob logs products at or below their reorder threshold so operators
// can act before they go out of stock.
type StockScanJob struct {
	Repo   dashboard.Repository
	Logger *slog.Logger
}

// NewStockScanJob wires dependencies for the stock scan handler.
func NewStockScanJob(repo dashboard.Repository, logger *slog.Logger) *StockScanJob {
	return &StockScanJob{Repo: repo, Logger: logger}
}

// Handle processes stock scan tasks.
func (j *StockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Repo == nil {
		return errors.New("stock scan: handler not configured")
	}
	var payload StockScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Limit <= 0 {
		payload.Limit = defaultScanLimit
	}

	rows, err := j.Repo.LowStockProducts(ctx, payload.Limit)
	if err != nil {
		j.Logger.Error("stock scan query", slog.Any("error", err))
		return err
	}
	if len(rows) == 0 {
		j.Logger.Info("stock scan: no products at threshold")
		return nil
	}

	for _, p := range rows {
		j.Logger.Warn("low stock",
			slog.Int64("product_id", p.ID),
			slog.String("name", p.Name),
			slog.Int64("quantity", p.Quantity),
			slog.Int64("threshold", p.Threshold),
		)
	}
	j.Logger.Info("stock scan complete", slog.Int("flagged", len(rows)))
	return nil
}
