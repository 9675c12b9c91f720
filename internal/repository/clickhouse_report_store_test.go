package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"PredVal/internal/domain/models"
)

type execCall struct {
	query string
	args  []driver.NamedValue
}

// execConn records every ExecContext call instead of talking to a server.
type execConn struct {
	calls []execCall
}

func (c *execConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("prepare not supported") }
func (c *execConn) Close() error                        { return nil }
func (c *execConn) Begin() (driver.Tx, error)           { return nil, errors.New("tx not supported") }

func (c *execConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.calls = append(c.calls, execCall{query: query, args: args})
	return driver.RowsAffected(len(args) / 7), nil
}

type execConnector struct{ conn *execConn }

func (c execConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c execConnector) Driver() driver.Driver                        { return nil }

func TestClickHouseReportStoreSkipsEmptyReports(t *testing.T) {
	// no rows means no round-trip, so a nil db is never touched
	s := NewClickHouseReportStore(nil, "predval.window_errors")
	if err := s.StoreReport(context.Background(), "run", &models.ReportSummary{WindowSize: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.StoreReport(context.Background(), "run", nil); err != nil {
		t.Fatalf("unexpected error for nil report: %v", err)
	}
}

func TestClickHouseReportStoreChunkedInsert(t *testing.T) {
	conn := &execConn{}
	db := sql.OpenDB(execConnector{conn: conn})
	defer db.Close()

	s := NewClickHouseReportStore(db, "predval.window_errors")
	s.chunkSize = 2

	avg := "0.20"
	report := &models.ReportSummary{
		WindowSize: 2,
		Windows: []models.WindowSummary{
			{StartTime: 1, EndTime: 2, AverageError: &avg, Records: 3},
			{StartTime: 2, EndTime: 3, Records: 1},
			{StartTime: 3, EndTime: 4, AverageError: &avg, Records: 2},
		},
	}
	if err := s.StoreReport(context.Background(), "run-1", report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(conn.calls) != 2 {
		t.Fatalf("expected 2 inserts, got %d", len(conn.calls))
	}
	first, second := conn.calls[0], conn.calls[1]
	if !strings.HasPrefix(first.query, "INSERT INTO predval.window_errors (") {
		t.Fatalf("unexpected query %q", first.query)
	}
	if n := strings.Count(first.query, "(?, ?, ?, ?, ?, ?, ?)"); n != 2 {
		t.Fatalf("expected 2 value tuples, got %d", n)
	}
	if len(first.args) != 14 || len(second.args) != 7 {
		t.Fatalf("unexpected arg counts %d and %d", len(first.args), len(second.args))
	}

	if first.args[0].Value != "run-1" || first.args[3].Value != int64(1) || first.args[5].Value != int64(3) {
		t.Fatalf("unexpected first row %v", first.args[:7])
	}
	got, err := decimal.NewFromString(first.args[6].Value.(string))
	if err != nil || !got.Equal(decimal.RequireFromString("0.20")) {
		t.Fatalf("expected average 0.20, got %v", first.args[6].Value)
	}
	if first.args[13].Value != nil {
		t.Fatalf("expected NULL average for the empty window, got %v", first.args[13].Value)
	}
}

func TestClickHouseReportStoreRejectsBadAverage(t *testing.T) {
	db := sql.OpenDB(execConnector{conn: &execConn{}})
	defer db.Close()

	bad := "n/a"
	report := &models.ReportSummary{Windows: []models.WindowSummary{{StartTime: 1, EndTime: 1, AverageError: &bad}}}
	if err := NewClickHouseReportStore(db, "t").StoreReport(context.Background(), "run", report); err == nil {
		t.Fatalf("expected error for unparsable average")
	}
}
