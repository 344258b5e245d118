package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run results used as the result label of runs_total.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Default names.
const (
	DefaultNamespace = "scoreplot"
	DefaultSubsystem = "run"
)

// DefaultBuckets covers load and render durations in milliseconds.
var DefaultBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}

// Manager holds the metrics of plotting runs.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         *prometheus.Registry

	runs           *prometheus.CounterVec
	rowsRead       prometheus.Counter
	rowsDropped    prometheus.Counter
	rowsPlotted    prometheus.Gauge
	panels         prometheus.Gauge
	loadDuration   prometheus.Histogram
	renderDuration prometheus.Histogram
	lastSuccess    prometheus.Gauge
}

// NewManager creates a metrics manager on its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        DefaultNamespace,
		subsystem:        DefaultSubsystem,
		histogramBuckets: DefaultBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
	}

	for _, opt := range opts {
		opt(m)
	}
	m.registry = prometheus.NewRegistry()

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_total",
		Help:        "Total number of plotting runs by result",
		ConstLabels: labels,
	}, []string{"result"})

	m.rowsRead = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_read_total",
		Help:        "Total number of data rows parsed from scores logs",
		ConstLabels: labels,
	})

	m.rowsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_dropped_total",
		Help:        "Total number of rows removed by truncation or merged by resampling",
		ConstLabels: labels,
	})

	m.rowsPlotted = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_plotted",
		Help:        "Number of samples per series in the last rendered figure",
		ConstLabels: labels,
	})

	m.panels = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "panels_rendered",
		Help:        "Number of metric cells in the last rendered figure",
		ConstLabels: labels,
	})

	m.loadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "load_duration_milliseconds",
		Help:        "Time spent parsing and cleaning a scores log",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.renderDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "render_duration_milliseconds",
		Help:        "Time spent drawing and writing the figure",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.lastSuccess = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_success_timestamp_seconds",
		Help:        "Unix time of the last successful run",
		ConstLabels: labels,
	})
}

// RecordRun counts a finished run.
func (m *Manager) RecordRun(result string) {
	if !m.enabled {
		return
	}
	m.runs.WithLabelValues(result).Inc()
	if result == ResultSuccess {
		m.lastSuccess.SetToCurrentTime()
	}
}

// RecordRowsRead adds parsed rows.
func (m *Manager) RecordRowsRead(n int) {
	if !m.enabled {
		return
	}
	m.rowsRead.Add(float64(n))
}

// RecordRowsDropped adds rows removed during cleanup.
func (m *Manager) RecordRowsDropped(n int) {
	if !m.enabled || n <= 0 {
		return
	}
	m.rowsDropped.Add(float64(n))
}

// UpdateFigure records the shape of the rendered figure.
func (m *Manager) UpdateFigure(rows, panels int) {
	if !m.enabled {
		return
	}
	m.rowsPlotted.Set(float64(rows))
	m.panels.Set(float64(panels))
}

// ObserveLoadDuration records load time in milliseconds.
func (m *Manager) ObserveLoadDuration(ms float64) {
	if !m.enabled {
		return
	}
	m.loadDuration.Observe(ms)
}

// ObserveRenderDuration records render time in milliseconds.
func (m *Manager) ObserveRenderDuration(ms float64) {
	if !m.enabled {
		return
	}
	m.renderDuration.Observe(ms)
}

// Registry returns the registry the manager's metrics live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics in the text exposition format to path,
// for pickup by a node_exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}
