// Package config defines scoreplot configuration and its loading.
//
// Conventions:
// - Defaults come from New(); Load layers a YAML file and env vars on top.
// - Command-line flags are applied by the entry point after Load.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/okian/scoreplot/internal/adapters/render"
	"github.com/okian/scoreplot/internal/adapters/scorefile"
	"github.com/okian/scoreplot/internal/domain/cleanup"
	"github.com/okian/scoreplot/internal/domain/layout"
	"github.com/okian/scoreplot/pkg/metrics"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// ScoresFile is the log file name looked up inside the target directory.
	ScoresFile string `koanf:"scores_file"`

	// Strategy is "truncate" or "resample".
	Strategy string `koanf:"strategy"`

	// ResampleWindow is the bucket width used by the resample strategy.
	ResampleWindow time.Duration `koanf:"resample_window"`

	// ConvNum is the smoothing window; 0 disables smoothing.
	ConvNum int `koanf:"conv_num"`

	// StepScaleThreshold is the max step above which the axis is shown in
	// thousands.
	StepScaleThreshold float64 `koanf:"step_scale_threshold"`

	// Renderer is auto, plot, chart or html.
	Renderer string `koanf:"renderer"`

	// Cols is the number of grid columns.
	Cols int `koanf:"cols"`

	// CellWidthIn and CellHeightIn size one grid cell in inches.
	CellWidthIn  float64 `koanf:"cell_width_in"`
	CellHeightIn float64 `koanf:"cell_height_in"`

	// MetricsFile, when set, receives Prometheus metrics in text format.
	MetricsFile string `koanf:"metrics_file"`

	// MetricsEnabled turns metric collection on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace and MetricsSubsystem prefix every metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsBuckets are the duration histogram buckets in milliseconds;
	// empty keeps the built-in ones.
	MetricsBuckets []float64 `koanf:"metrics_buckets"`

	// MetricsLabels are constant labels added to every metric.
	MetricsLabels map[string]string `koanf:"metrics_labels"`
}

// metricName matches valid Prometheus name parts and label names.
var metricName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		ScoresFile:         scorefile.DefaultName,
		Strategy:           cleanup.Truncate.String(),
		ResampleWindow:     cleanup.DefaultWindow,
		ConvNum:            0,
		StepScaleThreshold: cleanup.DefaultScaleAt,
		Renderer:           string(render.KindAuto),
		Cols:               layout.DefaultCols,
		CellWidthIn:        layout.DefaultCellWidthIn,
		CellHeightIn:       layout.DefaultCellHeightIn,
		MetricsEnabled:     true,
		MetricsNamespace:   metrics.DefaultNamespace,
		MetricsSubsystem:   metrics.DefaultSubsystem,
	}
}

// Validate checks field ranges and enum values.
func (c *Config) Validate() error {
	if c.ScoresFile == "" {
		return fmt.Errorf("%w: scores_file must not be empty", ErrInvalidConfig)
	}
	if _, err := cleanup.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := render.ParseKind(c.Renderer); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.ResampleWindow <= 0 {
		return fmt.Errorf("%w: resample_window must be positive", ErrInvalidConfig)
	}
	if c.ConvNum < 0 {
		return fmt.Errorf("%w: conv_num must not be negative", ErrInvalidConfig)
	}
	if c.StepScaleThreshold <= 0 {
		return fmt.Errorf("%w: step_scale_threshold must be positive", ErrInvalidConfig)
	}
	if c.Cols < 1 {
		return fmt.Errorf("%w: cols must be at least 1", ErrInvalidConfig)
	}
	if c.CellWidthIn <= 0 || c.CellHeightIn <= 0 {
		return fmt.Errorf("%w: cell size must be positive", ErrInvalidConfig)
	}
	return c.validateMetrics()
}

func (c *Config) validateMetrics() error {
	for _, part := range []string{c.MetricsNamespace, c.MetricsSubsystem} {
		if part != "" && !metricName.MatchString(part) {
			return fmt.Errorf("%w: invalid metric name part %q", ErrInvalidConfig, part)
		}
	}
	for i := 1; i < len(c.MetricsBuckets); i++ {
		if c.MetricsBuckets[i] <= c.MetricsBuckets[i-1] {
			return fmt.Errorf("%w: metrics_buckets must be strictly increasing", ErrInvalidConfig)
		}
	}
	for name := range c.MetricsLabels {
		// "result" is the label of runs_total.
		if !metricName.MatchString(name) || strings.HasPrefix(name, "__") || name == "result" {
			return fmt.Errorf("%w: invalid metric label %q", ErrInvalidConfig, name)
		}
	}
	return nil
}
