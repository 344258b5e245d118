package render

import (
	"context"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	// Canvas backends used by draw.NewFormattedCanvas.
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"github.com/okian/scoreplot/internal/domain/layout"
)

var plotFormats = []string{"png", "jpg", "jpeg", "tif", "tiff", "svg", "pdf", "eps"}

// royalBlue is the line colour of every cell.
var royalBlue = color.RGBA{R: 65, G: 105, B: 225, A: 255}

// PlotRenderer draws figures with gonum/plot.
type PlotRenderer struct {
	lineColor color.Color
	lineWidth vg.Length
	pad       vg.Length
	gap       vg.Length
}

// NewPlotRenderer returns a gonum/plot backed renderer.
func NewPlotRenderer() *PlotRenderer {
	return &PlotRenderer{
		lineColor: royalBlue,
		lineWidth: vg.Points(1),
		pad:       vg.Points(6),
		gap:       vg.Points(10),
	}
}

// Formats implements Renderer.
func (r *PlotRenderer) Formats() []string { return plotFormats }

// Render implements Renderer.
func (r *PlotRenderer) Render(ctx context.Context, fig *layout.Figure, w io.Writer, format string) error {
	c, err := draw.NewFormattedCanvas(vg.Length(fig.WidthIn)*vg.Inch, vg.Length(fig.HeightIn)*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	dc := draw.New(c)
	tiles := draw.Tiles{
		Rows:      fig.Grid.Rows,
		Cols:      fig.Grid.Cols,
		PadTop:    r.pad,
		PadBottom: r.pad,
		PadLeft:   r.pad,
		PadRight:  r.pad,
		PadX:      r.gap,
		PadY:      r.gap,
	}

	for i, panel := range fig.Panels {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := r.panelPlot(panel)
		if err != nil {
			return fmt.Errorf("panel %q: %w", panel.Title, err)
		}
		row, col := fig.Grid.Cell(i)
		p.Draw(tiles.At(dc, col, row))
	}

	_, err = c.WriteTo(w)
	return err
}

func (r *PlotRenderer) panelPlot(panel layout.Panel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title
	p.X.Label.Text = panel.XLabel
	p.Add(plotter.NewGrid())

	for _, seg := range panel.Segments() {
		pts := make(plotter.XYs, len(seg[0]))
		for i := range pts {
			pts[i].X = seg[0][i]
			pts[i].Y = seg[1][i]
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = r.lineColor
		l.LineStyle.Width = r.lineWidth
		p.Add(l)
	}

	p.X.Min = panel.XMin
	p.X.Max = panel.XMax
	return p, nil
}
