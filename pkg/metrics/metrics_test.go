package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it gets its own registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldNotBeNil)
				So(manager.Registry() != NewManager().Registry(), ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithCustomLabels(map[string]string{"env": "test"}),
			)
			manager.RecordRun(ResultSuccess)

			Convey("Then metrics are registered under the custom names", func() {
				families, err := manager.Registry().Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_namespace_test_subsystem_runs_total")
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a fresh manager", t, func() {
		m := NewManager()

		Convey("When recording a run", func() {
			m.RecordRowsRead(10)
			m.RecordRowsRead(5)
			m.RecordRowsDropped(3)
			m.RecordRowsDropped(-1)
			m.UpdateFigure(12, 7)
			m.ObserveLoadDuration(4)
			m.ObserveRenderDuration(40)
			m.RecordRun(ResultSuccess)
			m.RecordRun(ResultFailure)

			Convey("Then counters and gauges hold the recorded values", func() {
				So(testutil.ToFloat64(m.rowsRead), ShouldEqual, 15.0)
				So(testutil.ToFloat64(m.rowsDropped), ShouldEqual, 3.0)
				So(testutil.ToFloat64(m.rowsPlotted), ShouldEqual, 12.0)
				So(testutil.ToFloat64(m.panels), ShouldEqual, 7.0)
				So(testutil.ToFloat64(m.runs.WithLabelValues(ResultSuccess)), ShouldEqual, 1.0)
				So(testutil.ToFloat64(m.runs.WithLabelValues(ResultFailure)), ShouldEqual, 1.0)
				So(testutil.ToFloat64(m.lastSuccess), ShouldBeGreaterThan, 0.0)
			})
		})

		Convey("When metrics are disabled", func() {
			off := NewManager(WithMetricsEnabled(false))
			off.RecordRowsRead(10)
			off.RecordRun(ResultSuccess)

			Convey("Then nothing is recorded", func() {
				So(testutil.ToFloat64(off.rowsRead), ShouldEqual, 0.0)
			})
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given a manager with a recorded run", t, func() {
		m := NewManager()
		m.RecordRun(ResultSuccess)
		path := filepath.Join(t.TempDir(), "scoreplot.prom")

		Convey("When writing the textfile", func() {
			err := m.WriteTextfile(path)

			Convey("Then it holds the exposition text", func() {
				So(err, ShouldBeNil)
				b, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, `scoreplot_run_runs_total{result="success"} 1`)
			})
		})

		Convey("When the directory does not exist", func() {
			err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
