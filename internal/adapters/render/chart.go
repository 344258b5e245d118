package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/scoreplot/internal/domain/layout"
)

var chartFormats = []string{"png", "jpg", "jpeg"}

const (
	defaultDPI  = 96
	jpegQuality = 90
)

// ChartRenderer draws each cell with go-chart and composes the cells into
// one raster image.
type ChartRenderer struct {
	dpi       float64
	lineColor drawing.Color
	gridColor drawing.Color
}

// NewChartRenderer returns a go-chart backed renderer.
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{
		dpi:       defaultDPI,
		lineColor: drawing.Color{R: 65, G: 105, B: 225, A: 255},
		gridColor: drawing.ColorFromHex("dddddd"),
	}
}

// Formats implements Renderer.
func (r *ChartRenderer) Formats() []string { return chartFormats }

// Render implements Renderer.
func (r *ChartRenderer) Render(ctx context.Context, fig *layout.Figure, w io.Writer, format string) error {
	cellW := int(fig.WidthIn / float64(fig.Grid.Cols) * r.dpi)
	cellH := int(fig.HeightIn / float64(fig.Grid.Rows) * r.dpi)
	canvas := image.NewRGBA(image.Rect(0, 0, cellW*fig.Grid.Cols, cellH*fig.Grid.Rows))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	for i, panel := range fig.Panels {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := r.renderCell(panel, cellW, cellH)
		if err != nil {
			return fmt.Errorf("panel %q: %w", panel.Title, err)
		}
		row, col := fig.Grid.Cell(i)
		at := image.Rect(col*cellW, row*cellH, (col+1)*cellW, (row+1)*cellH)
		draw.Draw(canvas, at, img, img.Bounds().Min, draw.Over)
	}

	switch format {
	case "png":
		return png.Encode(w, canvas)
	case "jpg", "jpeg":
		return jpeg.Encode(w, canvas, &jpeg.Options{Quality: jpegQuality})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (r *ChartRenderer) renderCell(panel layout.Panel, width, height int) (image.Image, error) {
	xmin, xmax := panel.XMin, panel.XMax
	if xmax <= xmin {
		xmax = xmin + 1
	}
	ylo, yhi, ok := panel.YRange()
	if !ok {
		ylo, yhi = 0, 1
	}
	if ylo == yhi {
		ylo, yhi = ylo-1, yhi+1
	}

	lineStyle := chart.Style{StrokeColor: r.lineColor, StrokeWidth: 1.5}
	var series []chart.Series
	for _, seg := range panel.Segments() {
		series = append(series, chart.ContinuousSeries{XValues: seg[0], YValues: seg[1], Style: lineStyle})
	}
	if len(series) == 0 {
		// go-chart refuses to render without a series; keep the axes visible.
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{xmin, xmax},
			YValues: []float64{ylo, ylo},
			Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
		})
	}

	gridStyle := chart.Style{StrokeColor: r.gridColor, StrokeWidth: 1}
	ch := chart.Chart{
		Title:      panel.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 30, Left: 12, Right: 16, Bottom: 8}},
		XAxis: chart.XAxis{
			Name:           panel.XLabel,
			Range:          &chart.ContinuousRange{Min: xmin, Max: xmax},
			GridMajorStyle: gridStyle,
		},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: ylo, Max: yhi},
			GridMajorStyle: gridStyle,
		},
		Series: series,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}
