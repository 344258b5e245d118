// Package layout computes the subplot grid for a set of metric series and
// describes the figure independently of any drawing library.
package layout

import (
	"errors"

	"github.com/okian/scoreplot/internal/domain/model"
)

// Defaults for the figure grid.
const (
	DefaultCols         = 3
	DefaultCellWidthIn  = 4.0
	DefaultCellHeightIn = 2.5
)

// ErrNoPanels is returned when a figure would have no cells.
var ErrNoPanels = errors.New("no panels to lay out")

// Grid is a rows x cols arrangement of N cells, filled row by row.
type Grid struct {
	N    int
	Rows int
	Cols int
}

// NewGrid returns the grid for n cells with cols columns; cols below one
// falls back to DefaultCols.
func NewGrid(n, cols int) Grid {
	if cols < 1 {
		cols = DefaultCols
	}
	return Grid{N: n, Rows: (n + cols - 1) / cols, Cols: cols}
}

// Cells returns Rows*Cols.
func (g Grid) Cells() int { return g.Rows * g.Cols }

// Empty returns the number of unused cells.
func (g Grid) Empty() int { return g.Cells() - g.N }

// Cell returns the row and column of cell i.
func (g Grid) Cell(i int) (row, col int) { return i / g.Cols, i % g.Cols }

// Size returns the figure size for the given cell size; width grows with
// columns and height with rows.
func (g Grid) Size(cellW, cellH float64) (w, h float64) {
	return float64(g.Cols) * cellW, float64(g.Rows) * cellH
}

// Panel is one line chart.
type Panel struct {
	Title  string
	XLabel string
	X      []float64
	Y      []float64
	XMin   float64
	XMax   float64
}

// Segments splits the panel into runs of consecutive points where both
// coordinates are finite, so missing and infinite values render as breaks in
// the line.
func (p Panel) Segments() [][2][]float64 {
	var out [][2][]float64
	var xs, ys []float64
	flush := func() {
		if len(xs) > 0 {
			out = append(out, [2][]float64{xs, ys})
			xs, ys = nil, nil
		}
	}
	for i := range p.X {
		if i >= len(p.Y) || model.IsGap(p.X[i]) || model.IsGap(p.Y[i]) {
			flush()
			continue
		}
		xs = append(xs, p.X[i])
		ys = append(ys, p.Y[i])
	}
	flush()
	return out
}

// YRange returns the finite min and max of Y. ok is false when Y has no
// finite values.
func (p Panel) YRange() (lo, hi float64, ok bool) {
	for _, y := range p.Y {
		if model.IsGap(y) {
			continue
		}
		if !ok {
			lo, hi, ok = y, y, true
			continue
		}
		lo = min(lo, y)
		hi = max(hi, y)
	}
	return lo, hi, ok
}

// Figure is a grid of panels plus its physical size in inches.
type Figure struct {
	Grid     Grid
	Panels   []Panel
	WidthIn  float64
	HeightIn float64
}

// Options controls figure construction.
type Options struct {
	Cols         int
	CellWidthIn  float64
	CellHeightIn float64
}

func (o Options) withDefaults() Options {
	if o.Cols < 1 {
		o.Cols = DefaultCols
	}
	if o.CellWidthIn <= 0 {
		o.CellWidthIn = DefaultCellWidthIn
	}
	if o.CellHeightIn <= 0 {
		o.CellHeightIn = DefaultCellHeightIn
	}
	return o
}

// Build lays out one panel per series of f in source order. Every panel
// shares the x axis and shows exactly [0, max(steps)].
func Build(f *model.Frame, opts Options) (*Figure, error) {
	if len(f.Series) == 0 {
		return nil, ErrNoPanels
	}
	opts = opts.withDefaults()

	grid := NewGrid(len(f.Series), opts.Cols)
	w, h := grid.Size(opts.CellWidthIn, opts.CellHeightIn)
	fig := &Figure{Grid: grid, WidthIn: w, HeightIn: h, Panels: make([]Panel, len(f.Series))}

	xmax := f.MaxStep()
	for i, s := range f.Series {
		fig.Panels[i] = Panel{
			Title:  s.Name,
			XLabel: f.XLabel,
			X:      f.Steps,
			Y:      s.Values,
			XMin:   0,
			XMax:   xmax,
		}
	}
	return fig, nil
}
