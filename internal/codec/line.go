// Package codec encodes and decodes the pipe-delimited text format used by the
// window, actual and predicted inputs and by the comparison report.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"PredVal/internal/domain/models"
)

const (
	Separator = "|"
	columns   = 3

	// NullAverage is written in place of an average for windows without errors.
	NullAverage = "null"
)

var (
	ErrColumnCount = errors.New("codec: unexpected column count")
	ErrEmptyInput  = errors.New("codec: empty input")
)

// DecodeError describes a row that could not be decoded.
type DecodeError struct {
	Line int // 1-based position in the source
	Text string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TrimLine strips a trailing line terminator.
func TrimLine(line string) string {
	return strings.TrimRight(line, "\r\n")
}

// DecodeObservation parses "time|stock|price".
func DecodeObservation(line string) (models.Observation, error) {
	cols := strings.Split(TrimLine(line), Separator)
	if len(cols) != columns {
		return models.Observation{}, fmt.Errorf("%w: got %d, want %d", ErrColumnCount, len(cols), columns)
	}

	t, err := strconv.ParseInt(strings.TrimSpace(cols[0]), 10, 64)
	if err != nil {
		return models.Observation{}, fmt.Errorf("parse time: %w", err)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(cols[2]))
	if err != nil {
		return models.Observation{}, fmt.Errorf("parse price: %w", err)
	}

	return models.Observation{Time: t, Stock: cols[1], Price: price}, nil
}

// DecodeObservations decodes every non-blank line. The first malformed row
// aborts decoding.
func DecodeObservations(lines []string) ([]models.Observation, error) {
	out := make([]models.Observation, 0, len(lines))
	for i, raw := range lines {
		line := TrimLine(raw)
		if line == "" {
			continue
		}
		obs, err := DecodeObservation(line)
		if err != nil {
			return nil, &DecodeError{Line: i + 1, Text: line, Err: err}
		}
		out = append(out, obs)
	}
	return out, nil
}

// EncodeObservation is the inverse of DecodeObservation, price fixed at 2 decimals.
func EncodeObservation(o models.Observation) string {
	return strings.Join([]string{
		strconv.FormatInt(o.Time, 10),
		o.Stock,
		o.Price.StringFixed(2),
	}, Separator)
}

// ParseWindowSize reads the window size from the first line of the window input.
// Range checks belong to the caller.
func ParseWindowSize(lines []string) (int, error) {
	if len(lines) == 0 {
		return 0, fmt.Errorf("window: %w", ErrEmptyInput)
	}
	n, err := strconv.Atoi(strings.TrimSpace(TrimLine(lines[0])))
	if err != nil {
		return 0, &DecodeError{Line: 1, Text: TrimLine(lines[0]), Err: fmt.Errorf("parse window: %w", err)}
	}
	return n, nil
}

// EncodeWindow formats "start_time|end_time|average_error".
func EncodeWindow(w models.WindowGroup) string {
	avg := NullAverage
	if w.AverageError != nil {
		avg = w.AverageError.StringFixed(2)
	}
	return strings.Join([]string{
		strconv.FormatInt(w.StartTime, 10),
		strconv.FormatInt(w.EndTime, 10),
		avg,
	}, Separator)
}

// EncodeWindows encodes one line per window, in order.
func EncodeWindows(windows []models.WindowGroup) []string {
	lines := make([]string, 0, len(windows))
	for _, w := range windows {
		lines = append(lines, EncodeWindow(w))
	}
	return lines
}

// Body joins report lines and appends the trailing newline.
func Body(lines []string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}
