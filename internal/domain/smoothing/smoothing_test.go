package smoothing_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/scoreplot/internal/domain/smoothing"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMovingAverage(t *testing.T) {
	Convey("Given the series 1..5", t, func() {
		in := []float64{1, 2, 3, 4, 5}

		Convey("When smoothing with a window of 3", func() {
			out, err := smoothing.MovingAverage(in, 3)

			Convey("Then interior values are exact 3-point means", func() {
				So(err, ShouldBeNil)
				So(out[1], ShouldAlmostEqual, 2.0)
				So(out[2], ShouldAlmostEqual, 3.0)
				So(out[3], ShouldAlmostEqual, 4.0)
			})

			Convey("And edges average only the in-range taps", func() {
				So(out[0], ShouldAlmostEqual, 1.5)
				So(out[4], ShouldAlmostEqual, 4.5)
			})

			Convey("And the input is not modified", func() {
				So(in, ShouldResemble, []float64{1, 2, 3, 4, 5})
				So(len(out), ShouldEqual, len(in))
			})
		})

		Convey("When smoothing with a window of 1", func() {
			out, err := smoothing.MovingAverage(in, 1)

			Convey("Then the series is unchanged", func() {
				So(err, ShouldBeNil)
				So(out, ShouldResemble, in)
			})
		})

		Convey("When smoothing with an even window of 2", func() {
			out, err := smoothing.MovingAverage(in, 2)

			Convey("Then each value averages itself and its left neighbour", func() {
				So(err, ShouldBeNil)
				So(out[0], ShouldAlmostEqual, 1.0)
				So(out[1], ShouldAlmostEqual, 1.5)
				So(out[4], ShouldAlmostEqual, 4.5)
			})
		})

		Convey("When the window is wider than the series", func() {
			out, err := smoothing.MovingAverage(in, 11)

			Convey("Then every value is the overall mean", func() {
				So(err, ShouldBeNil)
				for _, v := range out {
					So(v, ShouldAlmostEqual, 3.0)
				}
			})
		})

		Convey("When the window is not positive", func() {
			_, err := smoothing.MovingAverage(in, 0)

			Convey("Then it reports an invalid window", func() {
				So(errors.Is(err, smoothing.ErrInvalidWindow), ShouldBeTrue)
			})
		})
	})

	Convey("Given a series with a gap", t, func() {
		in := []float64{1, math.NaN(), 3, 5}

		Convey("When smoothing with a window of 3", func() {
			out, err := smoothing.MovingAverage(in, 3)

			Convey("Then the gap is preserved and neighbours skip it", func() {
				So(err, ShouldBeNil)
				So(math.IsNaN(out[1]), ShouldBeTrue)
				So(out[0], ShouldAlmostEqual, 1.0)
				So(out[2], ShouldAlmostEqual, 4.0)
				So(out[3], ShouldAlmostEqual, 4.0)
			})
		})
	})

	Convey("Given an empty series", t, func() {
		out, err := smoothing.MovingAverage(nil, 3)

		Convey("Then the result is empty", func() {
			So(err, ShouldBeNil)
			So(out, ShouldBeEmpty)
		})
	})
}
