package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportsWarmup recomputes and caches the default report payloads.
	TaskReportsWarmup = "reports:warmup"
	// TaskStockScan logs products at or below their reorder threshold.
	TaskStockScan = "stock:scan"
)

// ReportsWarmupPayload selects which period modes to warm.
type ReportsWarmupPayload struct {
	Periods []string `json:"periods"`
}

// NewReportsWarmupTask constructs a reports warmup task.
func NewReportsWarmupTask(periods ...string) (*asynq.Task, error) {
	data, err := json.Marshal(ReportsWarmupPayload{Periods: periods})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportsWarmup, data), nil
}

// StockScanPayload bounds the number of products reported per scan.
type StockScanPayload struct {
	Limit int `json:"limit"`
}

// NewStockScanTask constructs a stock scan task.
func NewStockScanTask(limit int) (*asynq.Task, error) {
	data, err := json.Marshal(StockScanPayload{Limit: limit})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStockScan, data), nil
}
