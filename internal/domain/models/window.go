package models

import "github.com/shopspring/decimal"

// WindowGroup collects merged records for window_size consecutive time slots
// [StartTime, EndTime]. AverageError is nil until summarized, and stays nil
// when the window carries no error-bearing record under the null policy.
type WindowGroup struct {
	StartTime    int64
	EndTime      int64
	Records      []MergedRecord
	AverageError *decimal.Decimal
}

// Report is the outcome of one validation run.
type Report struct {
	WindowSize int
	Windows    []WindowGroup
	Stats      RunStats
}

// RunStats carries counters gathered while building a report.
type RunStats struct {
	Actual        int `json:"actual"`
	Predicted     int `json:"predicted"`
	Matched       int `json:"matched"`
	Unmatched     int `json:"unmatched"`
	DistinctTimes int `json:"distinct_times"`
	Windows       int `json:"windows"`
	EmptyWindows  int `json:"empty_windows"`
}

// WindowSummary is the transport shape of a summarized window (storage, kafka, http).
type WindowSummary struct {
	StartTime    int64   `json:"start_time"`
	EndTime      int64   `json:"end_time"`
	AverageError *string `json:"average_error"`
	Records      int     `json:"records"`
}

// ReportSummary is a report reduced to its transport shape. It is what the
// backends receive, what the cache keeps and what the API returns.
type ReportSummary struct {
	WindowSize int             `json:"window_size"`
	Windows    []WindowSummary `json:"windows"`
	Lines      []string        `json:"lines"`
	Stats      RunStats        `json:"stats"`
}

// Summary pairs the transport windows with their encoded report lines.
func (r *Report) Summary(lines []string) *ReportSummary {
	if lines == nil {
		lines = []string{}
	}
	return &ReportSummary{
		WindowSize: r.WindowSize,
		Windows:    r.Summaries(),
		Lines:      lines,
		Stats:      r.Stats,
	}
}

// Summaries converts the report windows into their transport shape.
func (r *Report) Summaries() []WindowSummary {
	out := make([]WindowSummary, 0, len(r.Windows))
	for _, w := range r.Windows {
		s := WindowSummary{
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			Records:   len(w.Records),
		}
		if w.AverageError != nil {
			v := w.AverageError.StringFixed(2)
			s.AverageError = &v
		}
		out = append(out, s)
	}
	return out
}
