package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	"PredVal/internal/domain/models"
)

// EmptyWindowPolicy decides what happens to a window without any error-bearing record.
type EmptyWindowPolicy string

const (
	// PolicyFail aborts with an *EmptyWindowError.
	PolicyFail EmptyWindowPolicy = "fail"
	// PolicyNull leaves AverageError nil and carries on.
	PolicyNull EmptyWindowPolicy = "null"
)

// ParseEmptyWindowPolicy maps a config value to a policy; empty means fail.
func ParseEmptyWindowPolicy(s string) (EmptyWindowPolicy, error) {
	switch EmptyWindowPolicy(s) {
	case "", PolicyFail:
		return PolicyFail, nil
	case PolicyNull:
		return PolicyNull, nil
	default:
		return "", fmt.Errorf("unknown empty window policy %q", s)
	}
}

// AverageError returns the mean of present record errors, summed in record
// order as float64 and rounded to 2 decimals. ok is false when no record
// carries an error.
func AverageError(records []models.MergedRecord) (avg decimal.Decimal, ok bool) {
	var sum float64
	n := 0
	for _, r := range records {
		if r.Error == nil {
			continue
		}
		sum += r.Error.InexactFloat64()
		n++
	}
	if n == 0 {
		return decimal.Decimal{}, false
	}
	return roundFloat(sum / float64(n)), true
}

// Summarize fills AverageError on every group in place and returns the number
// of groups left without an average.
func Summarize(groups []models.WindowGroup, policy EmptyWindowPolicy) (int, error) {
	empty := 0
	for i := range groups {
		avg, ok := AverageError(groups[i].Records)
		if !ok {
			if policy != PolicyNull {
				return empty, &EmptyWindowError{Start: groups[i].StartTime, End: groups[i].EndTime}
			}
			groups[i].AverageError = nil
			empty++
			continue
		}
		groups[i].AverageError = &avg
	}
	return empty, nil
}
