package cleanup

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/okian/scoreplot/internal/domain/model"
)

// DefaultWindow is the resampling bucket width.
const DefaultWindow = time.Hour

// ResampleByElapsed buckets rows into fixed windows of elapsed time and
// averages every column within each bucket, ignoring missing values. It
// returns a new table with one row per non-empty bucket in chronological
// order; the elapsed column of each row holds the bucket start in seconds.
// Rows with a missing elapsed value are dropped.
func ResampleByElapsed(t *model.Table, window time.Duration) (*model.Table, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWindow, window)
	}
	ei := t.Index(model.ColElapsed)
	if ei < 0 {
		return nil, ErrNoElapsed
	}

	width := window.Seconds()
	type bucket struct {
		sums   []float64
		counts []int
	}
	var order []int64
	buckets := make(map[int64]*bucket)

	for _, row := range t.Rows {
		e := row[ei]
		if math.IsNaN(e) {
			continue
		}
		key := int64(math.Floor(float64(elapsedDuration(e)) / float64(window)))
		b, ok := buckets[key]
		if !ok {
			b = &bucket{sums: make([]float64, len(t.Columns)), counts: make([]int, len(t.Columns))}
			buckets[key] = b
			order = append(order, key)
		}
		for c, v := range row {
			if math.IsNaN(v) {
				continue
			}
			b.sums[c] += v
			b.counts[c]++
		}
	}

	slices.Sort(order)
	rows := make([][]float64, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		row := make([]float64, len(t.Columns))
		for c := range row {
			if b.counts[c] == 0 {
				row[c] = model.Missing
				continue
			}
			row[c] = b.sums[c] / float64(b.counts[c])
		}
		row[ei] = float64(key) * width
		rows = append(rows, row)
	}

	out := model.NewTable(append([]string(nil), t.Columns...), rows)
	SortBySteps(out)
	return out, nil
}

// elapsedDuration converts elapsed seconds to a duration.
func elapsedDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
