package render

import (
	"context"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/okian/scoreplot/internal/domain/layout"
	"github.com/okian/scoreplot/internal/domain/model"
)

var htmlFormats = []string{"html", "htm"}

const (
	defaultTitle  = "scores"
	pixelsPerInch = 96
	// emptyValue is how echarts marks a missing point.
	emptyValue = "-"
)

// HTMLRenderer writes an interactive page with go-echarts, one line chart
// per cell, wrapped in a flex layout.
type HTMLRenderer struct {
	title string
}

// NewHTMLRenderer returns a go-echarts backed renderer. The page title comes
// from WithTitle.
func NewHTMLRenderer(opts ...Option) *HTMLRenderer {
	return &HTMLRenderer{title: newOptions(opts).Title}
}

// Formats implements Renderer.
func (r *HTMLRenderer) Formats() []string { return htmlFormats }

// Render implements Renderer.
func (r *HTMLRenderer) Render(ctx context.Context, fig *layout.Figure, w io.Writer, _ string) error {
	page := components.NewPage()
	page.PageTitle = r.title
	page.SetLayout(components.PageFlexLayout)

	cellW := fmt.Sprintf("%dpx", int(fig.WidthIn/float64(fig.Grid.Cols)*pixelsPerInch))
	cellH := fmt.Sprintf("%dpx", int(fig.HeightIn/float64(fig.Grid.Rows)*pixelsPerInch))

	for _, panel := range fig.Panels {
		if err := ctx.Err(); err != nil {
			return err
		}
		page.AddCharts(lineChart(panel, cellW, cellH))
	}
	return page.Render(w)
}

func lineChart(panel layout.Panel, width, height string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: width, Height: height}),
		charts.WithTitleOpts(opts.Title{Title: panel.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      panel.XLabel,
			Type:      "value",
			Min:       panel.XMin,
			Max:       panel.XMax,
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "value",
			Scale:     opts.Bool(true),
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}),
	)

	data := make([]opts.LineData, 0, len(panel.X))
	for i, x := range panel.X {
		if model.IsGap(x) || i >= len(panel.Y) {
			continue
		}
		var y interface{} = panel.Y[i]
		if model.IsGap(panel.Y[i]) {
			y = emptyValue
		}
		data = append(data, opts.LineData{Value: []interface{}{x, y}})
	}
	line.AddSeries(panel.Title, data, charts.WithLineChartOpts(opts.LineChart{
		ShowSymbol:   opts.Bool(false),
		ConnectNulls: opts.Bool(false),
	}))
	return line
}
