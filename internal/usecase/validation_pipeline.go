package usecase

import (
	"context"
	"fmt"
	"time"

	"PredVal/internal/domain/models"
	drepo "PredVal/internal/domain/repository"
	applogger "PredVal/pkg/logger"
)

// ValidationPipeline runs index -> merge -> group by time -> group by window -> summarize.
type ValidationPipeline struct {
	logger  *applogger.Logger
	metrics drepo.Metrics
}

// NewValidationPipeline creates a new ValidationPipeline instance.
func NewValidationPipeline(logger *applogger.Logger, metrics drepo.Metrics) *ValidationPipeline {
	return &ValidationPipeline{logger: logger, metrics: metrics}
}

type PipelineInput struct {
	WindowSize int
	Actual     []models.Observation
	Predicted  []models.Observation
	Policy     EmptyWindowPolicy
}

// Run computes the report. It is synchronous; ctx is only checked between stages.
func (p *ValidationPipeline) Run(ctx context.Context, in PipelineInput) (*models.Report, error) {
	start := time.Now()
	if in.WindowSize < 1 {
		p.metrics.RecordError("window_size")
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindowSize, in.WindowSize)
	}

	idx := BuildPredictedIndex(in.Predicted)
	merged := Merge(in.Actual, idx)
	matched := 0
	for _, r := range merged {
		if r.HasPrediction() {
			matched++
		}
	}
	p.logger.Debug("merged actual records",
		applogger.Int("actual", len(in.Actual)),
		applogger.Int("predicted_entries", idx.Len()),
		applogger.Int("matched", matched),
	)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buckets := GroupByTime(merged)
	groups, err := GroupByWindow(buckets, in.WindowSize)
	if err != nil {
		p.metrics.RecordError("window_size")
		return nil, err
	}
	p.logger.Debug("grouped windows",
		applogger.Int("distinct_times", buckets.Len()),
		applogger.Int("windows", len(groups)),
	)

	empty, err := Summarize(groups, in.Policy)
	if err != nil {
		p.metrics.RecordError("empty_window")
		return nil, fmt.Errorf("summarize: %w", err)
	}

	report := &models.Report{
		WindowSize: in.WindowSize,
		Windows:    groups,
		Stats: models.RunStats{
			Actual:        len(in.Actual),
			Predicted:     len(in.Predicted),
			Matched:       matched,
			Unmatched:     len(merged) - matched,
			DistinctTimes: buckets.Len(),
			Windows:       len(groups),
			EmptyWindows:  empty,
		},
	}

	p.metrics.RecordRecords("actual", report.Stats.Actual)
	p.metrics.RecordRecords("predicted", report.Stats.Predicted)
	p.metrics.RecordRecords("matched", report.Stats.Matched)
	p.metrics.RecordRecords("unmatched", report.Stats.Unmatched)
	p.metrics.RecordWindows(report.Stats.Windows, report.Stats.EmptyWindows)
	p.metrics.RecordLatency("pipeline", time.Since(start).Seconds())
	return report, nil
}
