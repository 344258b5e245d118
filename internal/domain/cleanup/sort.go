package cleanup

import (
	"math"
	"sort"

	"github.com/okian/scoreplot/internal/domain/model"
)

// SortBySteps stably orders rows ascending by the steps column in place.
// Rows with a missing step go last. Tables without a steps column are left
// as they are.
func SortBySteps(t *model.Table) {
	i := t.Index(model.ColSteps)
	if i < 0 {
		return
	}
	sort.SliceStable(t.Rows, func(a, b int) bool {
		return stepLess(t.Rows[a][i], t.Rows[b][i])
	})
}

func stepLess(a, b float64) bool {
	switch {
	case math.IsNaN(a):
		return false
	case math.IsNaN(b):
		return true
	default:
		return a < b
	}
}

// IsSorted reports whether the steps column is non-decreasing, with missing
// steps only at the tail.
func IsSorted(t *model.Table) bool {
	i := t.Index(model.ColSteps)
	if i < 0 {
		return true
	}
	return sort.SliceIsSorted(t.Rows, func(a, b int) bool {
		return stepLess(t.Rows[a][i], t.Rows[b][i])
	})
}

// DropMissingSteps removes rows whose step is missing and returns how many
// were removed. Run it after SortBySteps; those rows are then the tail.
func DropMissingSteps(t *model.Table) int {
	i := t.Index(model.ColSteps)
	if i < 0 {
		return 0
	}
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		if !math.IsNaN(row[i]) {
			kept = append(kept, row)
		}
	}
	dropped := len(t.Rows) - len(kept)
	t.Rows = kept
	return dropped
}
