package usecase

import "PredVal/internal/domain/models"

// TimeBuckets groups merged records by time and remembers the order in which
// each time was first seen.
type TimeBuckets struct {
	order   []int64
	buckets map[int64][]models.MergedRecord
}

// GroupByTime buckets records by time. Records keep input order inside a bucket.
func GroupByTime(records []models.MergedRecord) *TimeBuckets {
	tb := &TimeBuckets{buckets: make(map[int64][]models.MergedRecord)}
	for _, r := range records {
		if _, ok := tb.buckets[r.Time]; !ok {
			tb.order = append(tb.order, r.Time)
		}
		tb.buckets[r.Time] = append(tb.buckets[r.Time], r)
	}
	return tb
}

// Len returns the number of distinct times.
func (tb *TimeBuckets) Len() int { return len(tb.order) }

// First returns the first inserted time. ok is false when empty.
func (tb *TimeBuckets) First() (t int64, ok bool) {
	if len(tb.order) == 0 {
		return 0, false
	}
	return tb.order[0], true
}

// At returns the records at time t, nil when t has no bucket.
func (tb *TimeBuckets) At(t int64) []models.MergedRecord {
	return tb.buckets[t]
}

// Times returns distinct times in insertion order.
func (tb *TimeBuckets) Times() []int64 {
	out := make([]int64, len(tb.order))
	copy(out, tb.order)
	return out
}
