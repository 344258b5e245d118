package cleanup_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/okian/scoreplot/internal/domain/cleanup"
	"github.com/okian/scoreplot/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var none = math.NaN()

func TestSortBySteps(t *testing.T) {
	Convey("Given rows appended out of order", t, func() {
		tbl := model.NewTable([]string{"steps", "loss"}, [][]float64{
			{30, 3},
			{10, 1},
			{none, 9},
			{20, 2},
			{10, 1.5},
		})

		Convey("When sorting by steps", func() {
			cleanup.SortBySteps(tbl)

			Convey("Then steps are non-decreasing with missing steps last", func() {
				So(cleanup.IsSorted(tbl), ShouldBeTrue)
				steps := tbl.Column("steps")
				So(steps[:4], ShouldResemble, []float64{10, 10, 20, 30})
				So(math.IsNaN(steps[4]), ShouldBeTrue)
			})

			Convey("And equal steps keep their source order", func() {
				So(tbl.Column("loss")[:2], ShouldResemble, []float64{1, 1.5})
			})

			Convey("And dropping rows without a step leaves only numeric steps", func() {
				So(cleanup.DropMissingSteps(tbl), ShouldEqual, 1)
				So(tbl.Column("steps"), ShouldResemble, []float64{10, 10, 20, 30})
				So(tbl.Column("loss"), ShouldResemble, []float64{1, 1.5, 2, 3})
				So(cleanup.DropMissingSteps(tbl), ShouldEqual, 0)
			})

			Convey("And sorting again changes nothing", func() {
				before := tbl.Clone()
				cleanup.SortBySteps(tbl)
				So(tbl.Column("loss")[:4], ShouldResemble, before.Column("loss")[:4])
			})
		})
	})

	Convey("Given many shuffled rows", t, func() {
		rng := rand.New(rand.NewSource(7))
		rows := make([][]float64, 200)
		for i := range rows {
			rows[i] = []float64{float64(rng.Intn(50)), rng.Float64()}
		}
		tbl := model.NewTable([]string{"steps", "x"}, rows)

		Convey("Then sorting always yields a non-decreasing step column", func() {
			cleanup.SortBySteps(tbl)
			So(cleanup.IsSorted(tbl), ShouldBeTrue)
		})
	})
}

func TestTruncateAtGap(t *testing.T) {
	Convey("Given two metrics with gaps at different rows", t, func() {
		tbl := model.NewTable([]string{"steps", "elapsed", "a", "b"}, [][]float64{
			{0, 0, 1, 1},
			{1, 1, 2, none},
			{2, 2, none, 3},
			{3, 3, 4, 4},
		})

		Convey("When truncating", func() {
			idx, ok := cleanup.CutIndex(tbl)
			dropped := cleanup.TruncateAtGap(tbl)

			Convey("Then every column is cut before the earliest gap", func() {
				So(ok, ShouldBeTrue)
				So(idx, ShouldEqual, 1)
				So(dropped, ShouldEqual, 3)
				So(tbl.Len(), ShouldEqual, 1)
				So(tbl.Column("steps"), ShouldResemble, []float64{0})
				So(tbl.Column("elapsed"), ShouldResemble, []float64{0})
			})
		})
	})

	Convey("Given a metric missing only in the first row", t, func() {
		tbl := model.NewTable([]string{"steps", "a"}, [][]float64{
			{0, none},
			{1, 2},
			{2, 3},
		})

		Convey("Then nothing is truncated", func() {
			_, ok := cleanup.CutIndex(tbl)
			So(ok, ShouldBeFalse)
			So(cleanup.TruncateAtGap(tbl), ShouldEqual, 0)
			So(tbl.Len(), ShouldEqual, 3)
		})
	})

	Convey("Given gaps only in reserved columns", t, func() {
		tbl := model.NewTable([]string{"steps", "mean", "a"}, [][]float64{
			{0, 1, 1},
			{1, none, 2},
		})

		Convey("Then reserved gaps are ignored", func() {
			So(cleanup.TruncateAtGap(tbl), ShouldEqual, 0)
		})
	})
}

func TestResampleByElapsed(t *testing.T) {
	Convey("Given samples spread over three hours with an empty hour", t, func() {
		tbl := model.NewTable([]string{"steps", "elapsed", "loss"}, [][]float64{
			{0, 0, 4},
			{10, 1800, 2},
			{20, 3599, none},
			{30, 3 * 3600, 1},
			{40, 3*3600 + 60, 3},
		})

		Convey("When resampling hourly", func() {
			out, err := cleanup.ResampleByElapsed(tbl, time.Hour)

			Convey("Then one row per non-empty hour is produced in order", func() {
				So(err, ShouldBeNil)
				So(out.Len(), ShouldEqual, 2)
				So(out.Column("elapsed"), ShouldResemble, []float64{0, 3 * 3600})
			})

			Convey("And columns are averaged ignoring missing values", func() {
				So(out.Column("steps"), ShouldResemble, []float64{10, 35})
				So(out.Column("loss"), ShouldResemble, []float64{3, 2})
			})

			Convey("And the source table is untouched", func() {
				So(tbl.Len(), ShouldEqual, 5)
			})
		})

		Convey("When the window is not positive", func() {
			_, err := cleanup.ResampleByElapsed(tbl, 0)

			Convey("Then it fails", func() {
				So(errors.Is(err, cleanup.ErrInvalidWindow), ShouldBeTrue)
			})
		})
	})

	Convey("Given a table without elapsed", t, func() {
		tbl := model.NewTable([]string{"steps", "loss"}, [][]float64{{0, 1}})

		Convey("Then resampling fails", func() {
			_, err := cleanup.ResampleByElapsed(tbl, time.Hour)
			So(errors.Is(err, cleanup.ErrNoElapsed), ShouldBeTrue)
		})
	})

	Convey("Given a bucket where a metric never has a value", t, func() {
		tbl := model.NewTable([]string{"steps", "elapsed", "loss"}, [][]float64{
			{0, 0, none},
			{1, 10, none},
		})

		Convey("Then that bucket value is missing", func() {
			out, err := cleanup.ResampleByElapsed(tbl, time.Hour)
			So(err, ShouldBeNil)
			So(math.IsNaN(out.Column("loss")[0]), ShouldBeTrue)
		})
	})
}

func TestNormalizeSteps(t *testing.T) {
	Convey("Given steps beyond one hundred thousand", t, func() {
		in := []float64{0, 50000, 150000}
		out, label := cleanup.NormalizeSteps(in, cleanup.DefaultScaleAt)

		Convey("Then steps are shown in thousands", func() {
			So(out, ShouldResemble, []float64{0, 50, 150})
			So(label, ShouldEqual, "Step [k]")
			So(in, ShouldResemble, []float64{0, 50000, 150000})
		})
	})

	Convey("Given small steps", t, func() {
		out, label := cleanup.NormalizeSteps([]float64{0, 500, 900}, cleanup.DefaultScaleAt)

		Convey("Then steps are unchanged", func() {
			So(out, ShouldResemble, []float64{0, 500, 900})
			So(label, ShouldEqual, "Step")
		})
	})

	Convey("Given exactly the threshold", t, func() {
		_, label := cleanup.NormalizeSteps([]float64{0, 100000}, cleanup.DefaultScaleAt)

		Convey("Then steps are not rescaled", func() {
			So(label, ShouldEqual, cleanup.LabelStep)
		})
	})
}

func TestThroughput(t *testing.T) {
	Convey("Given a cleaned step and elapsed axis", t, func() {
		steps := []float64{0, 500, 2000}
		elapsed := []float64{0, 60, 240}

		Convey("Then the sampling interval is the first difference", func() {
			d, ok := cleanup.SamplingInterval(steps)
			So(ok, ShouldBeTrue)
			So(d, ShouldEqual, 500.0)
		})

		Convey("Then minutes per thousand steps uses the last sample", func() {
			m, ok := cleanup.MinutesPerKiloStep(steps, elapsed)
			So(ok, ShouldBeTrue)
			So(m, ShouldAlmostEqual, 2.0)
		})
	})

	Convey("Given too few or too small steps", t, func() {
		_, ok := cleanup.SamplingInterval([]float64{3})
		So(ok, ShouldBeFalse)

		_, ok = cleanup.MinutesPerKiloStep([]float64{0, 900}, []float64{0, 10})
		So(ok, ShouldBeFalse)
	})
}

func TestParseStrategy(t *testing.T) {
	Convey("Given strategy names", t, func() {
		s, err := cleanup.ParseStrategy("Resample")
		So(err, ShouldBeNil)
		So(s, ShouldEqual, cleanup.Resample)
		So(s.String(), ShouldEqual, "resample")

		s, err = cleanup.ParseStrategy("")
		So(err, ShouldBeNil)
		So(s, ShouldEqual, cleanup.Truncate)

		_, err = cleanup.ParseStrategy("interpolate")
		So(errors.Is(err, cleanup.ErrUnknownStrategy), ShouldBeTrue)
	})
}
