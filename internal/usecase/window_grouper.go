package usecase

import "PredVal/internal/domain/models"

// GroupByWindow builds overlapping windows of size consecutive time slots.
//
// Windows start at the first inserted time and advance by one slot. Their number
// is distinct_times - size + 1, driven by how many distinct times exist rather
// than by the numeric span, so sparse inputs produce windows over gaps (which
// contribute no records). Input times are expected in non-decreasing order; the
// anchor is the first time seen, not the numeric minimum.
func GroupByWindow(tb *TimeBuckets, size int) ([]models.WindowGroup, error) {
	if size < 1 {
		return nil, ErrInvalidWindowSize
	}
	count := tb.Len() - size + 1
	begin, ok := tb.First()
	if !ok || count <= 0 {
		return []models.WindowGroup{}, nil
	}

	groups := make([]models.WindowGroup, 0, count)
	for start := begin; start < begin+int64(count); start++ {
		g := models.WindowGroup{
			StartTime: start,
			EndTime:   start + int64(size) - 1,
		}
		for offset := int64(0); offset < int64(size); offset++ {
			g.Records = append(g.Records, tb.At(start+offset)...)
		}
		groups = append(groups, g)
	}
	return groups, nil
}
