package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"PredVal/internal/domain/models"
	drepo "PredVal/internal/domain/repository"
	pkgcache "PredVal/pkg/cache"
)

const reportKeyPrefix = "report"

// CachedReportStore keeps report summaries in a cache Service.
type CachedReportStore struct {
	cache pkgcache.Service
}

// NewReportCache creates a ReportCache backed by a cache Service.
func NewReportCache(c pkgcache.Service) drepo.ReportCache {
	return &CachedReportStore{cache: c}
}

func (r *CachedReportStore) Get(ctx context.Context, digest string) (*models.ReportSummary, bool, error) {
	var report models.ReportSummary
	err := r.cache.Get(ctx, pkgcache.GenerateKey(reportKeyPrefix, digest), &report)
	if errors.Is(err, pkgcache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	if report.Lines == nil {
		report.Lines = []string{}
	}
	if report.Windows == nil {
		report.Windows = []models.WindowSummary{}
	}
	return &report, true, nil
}

func (r *CachedReportStore) Set(ctx context.Context, digest string, report *models.ReportSummary, ttl time.Duration) error {
	if report == nil {
		return nil
	}
	if err := r.cache.Set(ctx, pkgcache.GenerateKey(reportKeyPrefix, digest), report, ttl); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
