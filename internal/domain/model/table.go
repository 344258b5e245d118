// Package model contains domain models passed between layers.
package model

import "math"

// Reserved column names. Every other column in a scores log is a metric.
const (
	ColSteps    = "steps"
	ColEpisodes = "episodes"
	ColElapsed  = "elapsed"
	ColMean     = "mean"
	ColMedian   = "median"
	ColStdev    = "stdev"
	ColMax      = "max"
	ColMin      = "min"
)

// Reserved lists the reserved columns in their conventional order.
var Reserved = []string{ColSteps, ColEpisodes, ColElapsed, ColMean, ColMedian, ColStdev, ColMax, ColMin}

// IsReserved reports whether name is a reserved column.
func IsReserved(name string) bool {
	switch name {
	case ColSteps, ColEpisodes, ColElapsed, ColMean, ColMedian, ColStdev, ColMax, ColMin:
		return true
	}
	return false
}

// Missing is the in-memory value of a field that had no value.
var Missing = math.NaN()

// IsMissing reports whether v is a missing value.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// IsGap reports whether v cannot be drawn: missing or infinite.
func IsGap(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

// Table is a parsed scores log. Rows are aligned with Columns; missing values
// are NaN.
type Table struct {
	Columns []string
	Rows    [][]float64

	index map[string]int
}

// NewTable builds a table over columns with the given rows.
func NewTable(columns []string, rows [][]float64) *Table {
	t := &Table{Columns: columns, Rows: rows}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
}

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	if t.index == nil {
		t.reindex()
	}
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Has reports whether the table has column name.
func (t *Table) Has(name string) bool { return t.Index(name) >= 0 }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Column copies out the values of column name. It returns nil when the
// column does not exist.
func (t *Table) Column(name string) []float64 {
	i := t.Index(name)
	if i < 0 {
		return nil
	}
	out := make([]float64, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out
}

// MetricColumns returns the non-reserved columns in source order.
func (t *Table) MetricColumns() []string {
	var out []string
	for _, c := range t.Columns {
		if !IsReserved(c) {
			out = append(out, c)
		}
	}
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	cols := append([]string(nil), t.Columns...)
	rows := make([][]float64, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = append([]float64(nil), r...)
	}
	return NewTable(cols, rows)
}
