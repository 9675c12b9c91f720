package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"PredVal/internal/codec"
	"PredVal/internal/domain/models"
	drepo "PredVal/internal/domain/repository"
	applogger "PredVal/pkg/logger"
)

// ReportUseCase runs one batch validation: load, compute, fan out, write.
type ReportUseCase struct {
	source    drepo.LineSource
	writer    drepo.ReportWriter
	pipeline  *ValidationPipeline
	store     drepo.ReportStore     // optional
	publisher drepo.ReportPublisher // optional
	cache     drepo.ReportCache     // optional
	cacheTTL  time.Duration
	metrics   drepo.Metrics
	logger    *applogger.Logger
}

// NewReportUseCase creates a new ReportUseCase instance.
func NewReportUseCase(
	source drepo.LineSource,
	writer drepo.ReportWriter,
	pipeline *ValidationPipeline,
	metrics drepo.Metrics,
	logger *applogger.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		source:   source,
		writer:   writer,
		pipeline: pipeline,
		metrics:  metrics,
		logger:   logger,
	}
}

// WithStore attaches a report store backend.
func (uc *ReportUseCase) WithStore(s drepo.ReportStore) *ReportUseCase {
	uc.store = s
	return uc
}

// WithPublisher attaches a report publisher backend.
func (uc *ReportUseCase) WithPublisher(p drepo.ReportPublisher) *ReportUseCase {
	uc.publisher = p
	return uc
}

// WithCache attaches a report cache.
func (uc *ReportUseCase) WithCache(c drepo.ReportCache, ttl time.Duration) *ReportUseCase {
	uc.cache = c
	uc.cacheTTL = ttl
	return uc
}

type RunParams struct {
	WindowFile    string
	ActualFile    string
	PredictedFile string
	OutputFile    string
	Policy        EmptyWindowPolicy
}

type RunResult struct {
	RunID    string
	Lines    []string
	CacheHit bool
	Summary  *models.ReportSummary
	Report   *models.Report // nil on cache hit
}

// Run executes the whole job. Any error leaves the output untouched.
func (uc *ReportUseCase) Run(ctx context.Context, p RunParams) (*RunResult, error) {
	start := time.Now()

	windowLines, err := uc.source.ReadLines(ctx, p.WindowFile)
	if err != nil {
		return nil, fmt.Errorf("load window: %w", err)
	}
	window, err := codec.ParseWindowSize(windowLines)
	if err != nil {
		uc.metrics.RecordError("decode")
		return nil, fmt.Errorf("decode window: %w", err)
	}
	actualLines, err := uc.source.ReadLines(ctx, p.ActualFile)
	if err != nil {
		return nil, fmt.Errorf("load actual: %w", err)
	}
	predictedLines, err := uc.source.ReadLines(ctx, p.PredictedFile)
	if err != nil {
		return nil, fmt.Errorf("load predicted: %w", err)
	}

	res, err := uc.Evaluate(ctx, window, p.Policy, actualLines, predictedLines)
	if err != nil {
		return nil, err
	}

	if err := uc.writer.Write(ctx, p.OutputFile, res.Lines); err != nil {
		uc.metrics.RecordError("write")
		return nil, fmt.Errorf("write report: %w", err)
	}

	uc.metrics.RecordLatency("run", time.Since(start).Seconds())
	uc.logger.Info("report written",
		applogger.String("run_id", res.RunID),
		applogger.String("output", p.OutputFile),
		applogger.Int("window_size", window),
		applogger.Int("windows", len(res.Lines)),
		applogger.Bool("cache_hit", res.CacheHit),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return res, nil
}

// Evaluate validates raw input lines and fans the report out to the attached
// backends, on cache hits too. Nothing is written to the report writer.
func (uc *ReportUseCase) Evaluate(ctx context.Context, window int, policy EmptyWindowPolicy, actualLines, predictedLines []string) (*RunResult, error) {
	if window < 1 {
		uc.metrics.RecordError("window_size")
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindowSize, window)
	}

	digest := Digest(window, policy, actualLines, predictedLines)
	res := &RunResult{RunID: digest[:16]}

	summary, hit := uc.cachedSummary(ctx, digest)
	if !hit {
		report, err := uc.compute(ctx, window, policy, actualLines, predictedLines)
		if err != nil {
			return nil, err
		}
		res.Report = report
		summary = report.Summary(codec.EncodeWindows(report.Windows))
	}
	res.Summary = summary
	res.Lines = summary.Lines
	res.CacheHit = hit

	if err := uc.fanOut(ctx, res.RunID, summary); err != nil {
		return nil, err
	}
	if !hit {
		uc.storeCache(ctx, digest, summary)
	}
	return res, nil
}

func (uc *ReportUseCase) compute(ctx context.Context, window int, policy EmptyWindowPolicy, actualLines, predictedLines []string) (*models.Report, error) {
	actual, err := codec.DecodeObservations(actualLines)
	if err != nil {
		uc.metrics.RecordError("decode")
		return nil, fmt.Errorf("decode actual: %w", err)
	}
	predicted, err := codec.DecodeObservations(predictedLines)
	if err != nil {
		uc.metrics.RecordError("decode")
		return nil, fmt.Errorf("decode predicted: %w", err)
	}

	report, err := uc.pipeline.Run(ctx, PipelineInput{
		WindowSize: window,
		Actual:     actual,
		Predicted:  predicted,
		Policy:     policy,
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("pipeline completed",
		applogger.Int("actual", report.Stats.Actual),
		applogger.Int("unmatched", report.Stats.Unmatched),
		applogger.Int("windows", report.Stats.Windows),
		applogger.Int("empty_windows", report.Stats.EmptyWindows),
	)
	return report, nil
}

func (uc *ReportUseCase) fanOut(ctx context.Context, runID string, report *models.ReportSummary) error {
	if uc.store != nil {
		if err := uc.store.StoreReport(ctx, runID, report); err != nil {
			uc.metrics.RecordError("store")
			return fmt.Errorf("store report: %w", err)
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.PublishReport(ctx, runID, report); err != nil {
			uc.metrics.RecordError("publish")
			return fmt.Errorf("publish report: %w", err)
		}
	}
	return nil
}

// cachedSummary treats cache failures as misses.
func (uc *ReportUseCase) cachedSummary(ctx context.Context, digest string) (*models.ReportSummary, bool) {
	if uc.cache == nil {
		return nil, false
	}
	summary, ok, err := uc.cache.Get(ctx, digest)
	if err != nil {
		uc.logger.Warn("report cache get failed", applogger.Error(err))
		return nil, false
	}
	ok = ok && summary != nil
	uc.metrics.RecordCache(ok)
	return summary, ok
}

func (uc *ReportUseCase) storeCache(ctx context.Context, digest string, summary *models.ReportSummary) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, digest, summary, uc.cacheTTL); err != nil {
		uc.logger.Warn("report cache set failed", applogger.Error(err))
	}
}

// Close releases optional backends.
func (uc *ReportUseCase) Close() {
	if uc.store != nil {
		_ = uc.store.Close()
	}
	if uc.publisher != nil {
		_ = uc.publisher.Close()
	}
}

// Digest identifies a run by its window size, policy and raw inputs. Every
// line is length-prefixed, so a line with an embedded newline never collides
// with the lines it would split into.
func Digest(window int, policy EmptyWindowPolicy, actual, predicted []string) string {
	h := sha256.New()
	h.Write([]byte(strconv.Itoa(window)))
	h.Write([]byte{0})
	h.Write([]byte(policy))
	for _, part := range [][]string{actual, predicted} {
		_ = binary.Write(h, binary.BigEndian, uint64(len(part)))
		for _, l := range part {
			line := codec.TrimLine(l)
			_ = binary.Write(h, binary.BigEndian, uint64(len(line)))
			h.Write([]byte(line))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
