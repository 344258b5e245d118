package cleanup

import (
	"math"

	"github.com/okian/scoreplot/internal/domain/model"
)

// CutIndex returns the earliest row index, starting from the second row,
// at which any metric column is missing. ok is false when no metric has a gap
// past the first row.
func CutIndex(t *model.Table) (idx int, ok bool) {
	idx = t.Len()
	for c, name := range t.Columns {
		if model.IsReserved(name) {
			continue
		}
		for r := 1; r < idx; r++ {
			if math.IsNaN(t.Rows[r][c]) {
				idx = r
				ok = true
				break
			}
		}
	}
	return idx, ok
}

// TruncateAtGap drops every row from the first metric gap on, for all
// columns, and returns the number of rows dropped.
func TruncateAtGap(t *model.Table) int {
	idx, ok := CutIndex(t)
	if !ok {
		return 0
	}
	dropped := t.Len() - idx
	t.Rows = t.Rows[:idx]
	return dropped
}
