package repository

import (
	"context"
	"time"

	"PredVal/internal/domain/models"
)

// LineSource loads raw text lines for a named input (file path, object key...).
type LineSource interface {
	ReadLines(ctx context.Context, name string) ([]string, error)
}

// ReportWriter persists the encoded report body. Nothing is written on error.
type ReportWriter interface {
	Write(ctx context.Context, name string, lines []string) error
}

// ReportStore persists summarized windows for later querying.
type ReportStore interface {
	Init(ctx context.Context) error
	StoreReport(ctx context.Context, runID string, report *models.ReportSummary) error
	Close() error
}

// ReportPublisher publishes summarized windows to a message bus.
type ReportPublisher interface {
	PublishReport(ctx context.Context, runID string, report *models.ReportSummary) error
	Close() error
}

// ReportCache caches report summaries keyed by an input digest.
type ReportCache interface {
	Get(ctx context.Context, digest string) (*models.ReportSummary, bool, error)
	Set(ctx context.Context, digest string, report *models.ReportSummary, ttl time.Duration) error
}

type Metrics interface {
	RecordRecords(kind string, n int)
	RecordWindows(n int, empty int)
	RecordError(kind string)
	RecordCache(hit bool)
	RecordLatency(op string, seconds float64)
}
