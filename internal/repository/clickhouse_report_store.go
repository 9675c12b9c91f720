package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"PredVal/internal/domain/models"
	"PredVal/internal/domain/repository"
	applogger "PredVal/pkg/logger"
)

// ClickHouseReportStore implements ReportStore for ClickHouse.
type ClickHouseReportStore struct {
	db        *sql.DB
	table     string
	chunkSize int // windows per INSERT statement
	l         *applogger.Logger
}

// NewClickHouseReportStore creates ClickHouse report storage.
func NewClickHouseReportStore(db *sql.DB, table string) *ClickHouseReportStore {
	return &ClickHouseReportStore{db: db, table: table, chunkSize: 2000}
}

var _ repository.ReportStore = (*ClickHouseReportStore)(nil)

// SetLogger injects a structured logger.
func (s *ClickHouseReportStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *ClickHouseReportStore) Init(ctx context.Context) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
        run_id String,
        created_at DateTime,
        window_size UInt32,
        start_time Int64,
        end_time Int64,
        records UInt32,
        average_error Nullable(Decimal(18, 2))
    ) ENGINE=MergeTree ORDER BY (run_id, start_time)`, s.table)
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init report table: %w", err)
	}
	return nil
}

// StoreReport inserts one row per window.
func (s *ClickHouseReportStore) StoreReport(ctx context.Context, runID string, report *models.ReportSummary) error {
	if report == nil || len(report.Windows) == 0 {
		return nil
	}
	start := time.Now()
	created := time.Now().UTC()
	windows := report.Windows

	// Multi-row VALUES insert, chunked.
	for lo := 0; lo < len(windows); lo += s.chunkSize {
		hi := lo + s.chunkSize
		if hi > len(windows) {
			hi = len(windows)
		}

		values := make([]string, 0, hi-lo)
		args := make([]interface{}, 0, (hi-lo)*7)
		for _, w := range windows[lo:hi] {
			values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
			var avg interface{} // NULL for windows without an average
			if w.AverageError != nil {
				d, err := decimal.NewFromString(*w.AverageError)
				if err != nil {
					return fmt.Errorf("window [%d, %d] average: %w", w.StartTime, w.EndTime, err)
				}
				avg = d
			}
			args = append(args,
				runID,
				created,
				uint32(report.WindowSize),
				w.StartTime,
				w.EndTime,
				uint32(w.Records),
				avg,
			)
		}
		q := fmt.Sprintf("INSERT INTO %s (run_id, created_at, window_size, start_time, end_time, records, average_error) VALUES %s",
			s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse store_report insert error",
					applogger.String("table", s.table),
					applogger.String("run_id", runID),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("insert windows: %w", err)
		}
	}
	if s.l != nil {
		s.l.Info("clickhouse store_report ok",
			applogger.String("table", s.table),
			applogger.String("run_id", runID),
			applogger.Int("rows", len(windows)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (s *ClickHouseReportStore) Close() error {
	return nil // Managed by pkg
}
