// Package service wires the scores loader and the grid plotter into a
// single batch run.
package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/scoreplot/internal/adapters/render"
	"github.com/okian/scoreplot/internal/adapters/scorefile"
	"github.com/okian/scoreplot/internal/domain/cleanup"
	"github.com/okian/scoreplot/internal/domain/layout"
	"github.com/okian/scoreplot/internal/domain/model"
	"github.com/okian/scoreplot/internal/domain/smoothing"
	"github.com/okian/scoreplot/pkg/logger"
	"github.com/okian/scoreplot/pkg/metrics"
)

// Service loads a scores log, cleans it and renders one chart per metric.
type Service struct {
	// Loading
	scoresFile  string
	strategy    cleanup.Strategy
	window      time.Duration
	convNum     int
	stepScaleAt float64

	// Rendering
	renderer render.Kind
	layout   layout.Options

	runID   string
	metrics *metrics.Manager
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithScoresFile sets the log file name looked up inside a target directory.
func WithScoresFile(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.scoresFile = name
		}
	}
}

// WithStrategy selects the cleanup strategy.
func WithStrategy(st cleanup.Strategy) Option {
	return func(s *Service) {
		s.strategy = st
	}
}

// WithResampleWindow sets the bucket width used by the resample strategy.
func WithResampleWindow(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithSmoothing enables a centered moving average of width k on every
// metric. k <= 0 disables smoothing.
func WithSmoothing(k int) Option {
	return func(s *Service) {
		s.convNum = k
	}
}

// WithStepScaleThreshold sets the max step above which the axis is shown in
// thousands.
func WithStepScaleThreshold(v float64) Option {
	return func(s *Service) {
		if v > 0 {
			s.stepScaleAt = v
		}
	}
}

// WithRenderer selects the render backend.
func WithRenderer(k render.Kind) Option {
	return func(s *Service) {
		if k != "" {
			s.renderer = k
		}
	}
}

// WithLayout sets grid columns and cell size.
func WithLayout(o layout.Options) Option {
	return func(s *Service) {
		s.layout = o
	}
}

// WithMetrics sets the metrics manager. Defaults to a fresh manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.runID = id
		}
	}
}

// New creates a new Service instance with the given options.
func New(opts ...Option) *Service {
	s := &Service{
		scoresFile:  scorefile.DefaultName,
		strategy:    cleanup.Truncate,
		window:      cleanup.DefaultWindow,
		stepScaleAt: cleanup.DefaultScaleAt,
		renderer:    render.KindAuto,
		layout: layout.Options{
			Cols:         layout.DefaultCols,
			CellWidthIn:  layout.DefaultCellWidthIn,
			CellHeightIn: layout.DefaultCellHeightIn,
		},
		runID:   uuid.NewString(),
		metrics: metrics.NewManager(),
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.String("run_id", s.runID))
	return s
}

// RunID returns the identifier attached to every log line of this service.
func (s *Service) RunID() string { return s.runID }

// Run loads <targetDir>/<scores file> and renders it to out.
func (s *Service) Run(ctx context.Context, targetDir, out string) error {
	path := filepath.Join(targetDir, s.scoresFile)

	frame, err := s.Load(ctx, path)
	if err != nil {
		s.metrics.RecordRun(metrics.ResultFailure)
		return fmt.Errorf("load %s: %w", path, err)
	}
	if err := s.Render(ctx, frame, out); err != nil {
		s.metrics.RecordRun(metrics.ResultFailure)
		return fmt.Errorf("plot %s: %w", out, err)
	}
	s.metrics.RecordRun(metrics.ResultSuccess)
	return nil
}

// Load reads the scores log at path and returns a frame ready to plot.
// Rows are sorted by step (rows without one are dropped), cleaned with the
// configured strategy, the step axis is normalized and every metric is
// optionally smoothed.
func (s *Service) Load(ctx context.Context, path string) (*model.Frame, error) {
	start := time.Now()
	log := s.logger.Named("loader")

	t, err := scorefile.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	read := t.Len()
	s.metrics.RecordRowsRead(read)

	if !cleanup.IsSorted(t) {
		log.Debug(ctx, "rows out of order, sorting by step", logger.String("path", path))
	}
	cleanup.SortBySteps(t)
	if n := cleanup.DropMissingSteps(t); n > 0 {
		log.Warn(ctx, "rows without a step skipped", logger.Int("rows", n))
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("%w: no row has a step", scorefile.ErrEmptyLog)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch s.strategy {
	case cleanup.Resample:
		t, err = cleanup.ResampleByElapsed(t, s.window)
		if errors.Is(err, cleanup.ErrNoElapsed) {
			return nil, fmt.Errorf("%w: %s: %w", scorefile.ErrMissingColumn, model.ColElapsed, err)
		}
		if err != nil {
			return nil, err
		}
	default:
		cleanup.TruncateAtGap(t)
	}
	if dropped := read - t.Len(); dropped > 0 {
		s.metrics.RecordRowsDropped(dropped)
		log.Debug(ctx, "rows dropped during cleanup",
			logger.String("strategy", s.strategy.String()),
			logger.Int("dropped", dropped))
	}

	steps := t.Column(model.ColSteps)
	elapsed := t.Column(model.ColElapsed)
	if interval, ok := cleanup.SamplingInterval(steps); ok {
		log.Info(ctx, "sampling interval", logger.Float64("steps", interval))
	}
	if mins, ok := cleanup.MinutesPerKiloStep(steps, elapsed); ok {
		log.Info(ctx, "training speed", logger.Float64("minutes_per_1k_steps", mins))
	}

	axis, label := cleanup.NormalizeSteps(steps, s.stepScaleAt)
	frame := &model.Frame{
		Steps:      axis,
		RawMaxStep: (&model.Frame{Steps: steps}).MaxStep(),
		Elapsed:    elapsed,
		XLabel:     label,
	}

	for _, name := range t.MetricColumns() {
		values := t.Column(name)
		if s.convNum > 0 {
			if values, err = smoothing.MovingAverage(values, s.convNum); err != nil {
				return nil, fmt.Errorf("smooth %s: %w", name, err)
			}
		}
		frame.Series = append(frame.Series, model.Series{Name: name, Values: values})
	}

	s.metrics.ObserveLoadDuration(float64(time.Since(start).Milliseconds()))
	log.Info(ctx, "scores loaded",
		logger.String("path", path),
		logger.Int("rows", frame.Len()),
		logger.Int("metrics", len(frame.Series)),
		logger.String("x_label", frame.XLabel))
	return frame, nil
}

// Render lays out one panel per metric of frame and writes the figure to
// out. The encoding follows the extension of out. Nothing is written on
// error.
func (s *Service) Render(ctx context.Context, frame *model.Frame, out string) error {
	start := time.Now()
	log := s.logger.Named("plotter")

	if frame == nil || len(frame.Series) == 0 {
		return ErrNoMetrics
	}

	fig, err := layout.Build(frame, s.layout)
	if err != nil {
		return err
	}

	title := strings.TrimSuffix(filepath.Base(out), filepath.Ext(out))
	r, format, err := render.Select(s.renderer, out, render.WithTitle(title))
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := render.WriteFile(ctx, r, fig, out, format); err != nil {
		return err
	}

	s.metrics.UpdateFigure(frame.Len(), len(fig.Panels))
	s.metrics.ObserveRenderDuration(float64(time.Since(start).Milliseconds()))
	log.Info(ctx, "figure saved",
		logger.String("path", out),
		logger.String("format", format),
		logger.Int("panels", len(fig.Panels)),
		logger.Int("grid_rows", fig.Grid.Rows),
		logger.Int("grid_cols", fig.Grid.Cols))
	return nil
}
