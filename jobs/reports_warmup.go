package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/meridian-ims/meridian-ims/internal/reports"
)

// ReportsWarmupJob pre-populates the report cache so the first dashboard hit
// after the nightly version bump does not pay the aggregation cost.
type ReportsWarmupJob struct {
	Reports *reports.Service
	Logger  *slog.Logger
}

// NewReportsWarmupJob wires dependencies for the warmup handler.
func NewReportsWarmupJob(reportsSvc *reports.Service, logger *slog.Logger) *ReportsWarmupJob {
	return &ReportsWarmupJob{Reports: reportsSvc, Logger: logger}
}

// Handle processes reports warmup tasks.
func (j *ReportsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("reports warmup: handler not configured")
	}
	var payload ReportsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if len(payload.Periods) == 0 {
		payload.Periods = []string{"month", "year"}
	}

	j.Logger.Info("starting reports warmup", slog.Any("periods", payload.Periods))

	for _, period := range payload.Periods {
		if _, err := j.Reports.Overview(ctx, period, "", ""); err != nil {
			j.Logger.Error("warm overview", slog.String("period", period), slog.Any("error", err))
			return err
		}
		if _, err := j.Reports.BestCategories(ctx, period, "", "", 0); err != nil {
			j.Logger.Error("warm best categories", slog.String("period", period), slog.Any("error", err))
			return err
		}
		if _, err := j.Reports.BestProducts(ctx, period, "", "", 0); err != nil {
			j.Logger.Error("warm best products", slog.String("period", period), slog.Any("error", err))
			return err
		}
	}
	if _, err := j.Reports.ProfitVsRevenue(ctx, 0); err != nil {
		j.Logger.Error("warm profit vs revenue", slog.Any("error", err))
		return err
	}

	j.Logger.Info("reports warmup complete")
	return nil
}
