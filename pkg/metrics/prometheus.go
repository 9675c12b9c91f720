package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	registry     *prometheus.Registry
	recordsTotal *prometheus.CounterVec
	windowsTotal *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	cacheTotal   *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

// New creates a recorder backed by its own registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry creates a recorder registering its collectors on reg.
func NewWithRegistry(reg *prometheus.Registry) *Recorder {
	f := promauto.With(reg)
	counter := func(name, help, label string) *prometheus.CounterVec {
		return f.NewCounterVec(prometheus.CounterOpts{Namespace: "predval", Name: name, Help: help}, []string{label})
	}
	return &Recorder{
		registry:     reg,
		recordsTotal: counter("records_total", "Input and merged records, by kind", "kind"),
		windowsTotal: counter("windows_total", "Summarized windows, averaged or empty", "result"),
		errorsTotal:  counter("errors_total", "Run failures, by stage", "type"),
		cacheTotal:   counter("report_cache_total", "Report cache lookups", "result"),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "predval",
			Name:      "operation_duration_seconds",
			Help:      "Pipeline stage and backend latency",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"operation"}),
	}
}

// Registry exposes the underlying registry for HTTP scraping.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// RecordRecords adds n records of the given kind (actual, predicted, matched, unmatched).
func (r *Recorder) RecordRecords(kind string, n int) {
	r.recordsTotal.WithLabelValues(kind).Add(float64(n))
}

// RecordWindows records summarized windows; empty ones have no average.
func (r *Recorder) RecordWindows(n int, empty int) {
	r.windowsTotal.WithLabelValues("averaged").Add(float64(n - empty))
	r.windowsTotal.WithLabelValues("empty").Add(float64(empty))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCache records a report cache lookup.
func (r *Recorder) RecordCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheTotal.WithLabelValues(result).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Push sends all collected metrics to a Pushgateway. Batch runs end before a
// scrape could happen, so this is how their metrics get out.
func (r *Recorder) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(r.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
