package layout_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/scoreplot/internal/domain/layout"
	"github.com/okian/scoreplot/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewGrid(t *testing.T) {
	Convey("Given seven metrics and three columns", t, func() {
		g := layout.NewGrid(7, 3)

		Convey("Then the grid is three by three with two empty cells", func() {
			So(g.Rows, ShouldEqual, 3)
			So(g.Cols, ShouldEqual, 3)
			So(g.Cells(), ShouldEqual, 9)
			So(g.Empty(), ShouldEqual, 2)
		})

		Convey("Then cells fill row by row", func() {
			r, c := g.Cell(0)
			So([]int{r, c}, ShouldResemble, []int{0, 0})
			r, c = g.Cell(4)
			So([]int{r, c}, ShouldResemble, []int{1, 1})
			r, c = g.Cell(6)
			So([]int{r, c}, ShouldResemble, []int{2, 0})
		})
	})

	Convey("Given exact multiples and small counts", t, func() {
		So(layout.NewGrid(3, 3).Rows, ShouldEqual, 1)
		So(layout.NewGrid(1, 3).Rows, ShouldEqual, 1)
		So(layout.NewGrid(6, 3).Rows, ShouldEqual, 2)
		So(layout.NewGrid(4, 0).Cols, ShouldEqual, layout.DefaultCols)
	})

	Convey("Given growing grids", t, func() {
		w1, h1 := layout.NewGrid(3, 3).Size(4, 2)
		w2, h2 := layout.NewGrid(7, 3).Size(4, 2)
		w3, _ := layout.NewGrid(4, 4).Size(4, 2)

		Convey("Then more rows are taller and more columns wider", func() {
			So(h2, ShouldBeGreaterThan, h1)
			So(w2, ShouldEqual, w1)
			So(w3, ShouldBeGreaterThan, w1)
		})
	})
}

func TestBuild(t *testing.T) {
	Convey("Given a cleaned frame with three metrics", t, func() {
		frame := &model.Frame{
			Steps:  []float64{0, 50, 150},
			XLabel: "Step [k]",
			Series: []model.Series{
				{Name: "loss", Values: []float64{3, 2, 1}},
				{Name: "reward", Values: []float64{0, 1, 2}},
				{Name: "lr", Values: []float64{1, 1, 1}},
			},
		}

		Convey("When building the figure", func() {
			fig, err := layout.Build(frame, layout.Options{})

			Convey("Then each metric gets a titled cell in source order", func() {
				So(err, ShouldBeNil)
				So(len(fig.Panels), ShouldEqual, 3)
				So(fig.Panels[0].Title, ShouldEqual, "loss")
				So(fig.Panels[2].Title, ShouldEqual, "lr")
				So(fig.Panels[1].XLabel, ShouldEqual, "Step [k]")
			})

			Convey("And every x range is exactly [0, max(steps)]", func() {
				for _, p := range fig.Panels {
					So(p.XMin, ShouldEqual, 0.0)
					So(p.XMax, ShouldEqual, 150.0)
				}
			})

			Convey("And the figure size follows the grid", func() {
				So(fig.WidthIn, ShouldEqual, 3*layout.DefaultCellWidthIn)
				So(fig.HeightIn, ShouldEqual, layout.DefaultCellHeightIn)
			})

			Convey("And building again yields the same structure", func() {
				again, err := layout.Build(frame, layout.Options{})
				So(err, ShouldBeNil)
				So(again, ShouldResemble, fig)
			})
		})
	})

	Convey("Given a frame without metrics", t, func() {
		_, err := layout.Build(&model.Frame{Steps: []float64{0}}, layout.Options{})

		Convey("Then there is nothing to lay out", func() {
			So(errors.Is(err, layout.ErrNoPanels), ShouldBeTrue)
		})
	})
}

func TestPanelSegments(t *testing.T) {
	Convey("Given a panel with gaps", t, func() {
		nan := math.NaN()
		p := layout.Panel{
			X: []float64{0, 1, 2, 3, 4, 5},
			Y: []float64{1, 2, nan, 4, nan, nan},
		}

		Convey("Then finite runs become separate segments", func() {
			segs := p.Segments()
			So(len(segs), ShouldEqual, 2)
			So(segs[0][0], ShouldResemble, []float64{0, 1})
			So(segs[1][1], ShouldResemble, []float64{4})
		})

		Convey("Then the y range skips gaps", func() {
			lo, hi, ok := p.YRange()
			So(ok, ShouldBeTrue)
			So(lo, ShouldEqual, 1.0)
			So(hi, ShouldEqual, 4.0)
		})
	})

	Convey("Given a panel with infinite values", t, func() {
		p := layout.Panel{
			X: []float64{0, 1, 2, 3, 4},
			Y: []float64{1, math.Inf(1), 3, math.Inf(-1), 5},
		}

		Convey("Then they break the line like missing values", func() {
			segs := p.Segments()
			So(len(segs), ShouldEqual, 3)
			So(segs[1][0], ShouldResemble, []float64{2})
		})

		Convey("Then the y range stays finite", func() {
			lo, hi, ok := p.YRange()
			So(ok, ShouldBeTrue)
			So(lo, ShouldEqual, 1.0)
			So(hi, ShouldEqual, 5.0)
		})
	})

	Convey("Given a panel with no values", t, func() {
		p := layout.Panel{X: []float64{0, 1}, Y: []float64{math.NaN(), math.NaN()}}
		So(p.Segments(), ShouldBeEmpty)
		_, _, ok := p.YRange()
		So(ok, ShouldBeFalse)
	})
}
