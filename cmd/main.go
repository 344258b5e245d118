package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/scoreplot/internal/adapters/render"
	app "github.com/okian/scoreplot/internal/app"
	"github.com/okian/scoreplot/internal/config"
	"github.com/okian/scoreplot/internal/domain/cleanup"
	"github.com/okian/scoreplot/internal/domain/layout"
	"github.com/okian/scoreplot/pkg/logger"
	"github.com/okian/scoreplot/pkg/metrics"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage: scoreplot [flags] target_dir savename")

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one plotting run and returns the process exit code.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	if err := logger.Init(); err != nil {
		fmt.Fprintf(stderr, "failed to initialize logging: %v\n", err)
		return exitError
	}
	defer func() { _ = logger.Sync() }()

	// Load configuration (defaults -> optional file -> env), then flags.
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return exitError
	}

	positional, err := parseArgs(cfg, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	targetDir, savename := positional[0], positional[1]

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		fmt.Fprintf(stderr, "invalid log level: %v\n", err)
		return exitUsage
	}
	log := logger.Get()

	mgr := newMetrics(cfg)
	svc, err := newService(cfg, log, mgr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	runErr := svc.Run(ctx, targetDir, savename)

	if cfg.MetricsFile != "" {
		if err := mgr.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn(ctx, "metrics not written", logger.String("path", cfg.MetricsFile), logger.Error(err))
		}
	}

	if runErr != nil {
		log.Error(ctx, "run failed", logger.String("run_id", svc.RunID()), logger.Error(runErr))
		fmt.Fprintf(stderr, "scoreplot: %v\n", runErr)
		return exitError
	}
	return exitOK
}

// parseArgs applies command-line flags on top of cfg and returns the two
// positional arguments. Flags may appear before, between or after them.
func parseArgs(cfg *config.Config, args []string, stderr io.Writer) ([]string, error) {
	fs := flag.NewFlagSet("scoreplot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), errUsage.Error())
		fs.PrintDefaults()
	}

	fs.IntVar(&cfg.ConvNum, "conv_num", cfg.ConvNum, "moving-average window applied to every metric; 0 disables smoothing")
	fs.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "missing-value handling: truncate or resample")
	fs.DurationVar(&cfg.ResampleWindow, "resample-window", cfg.ResampleWindow, "bucket width for the resample strategy")
	fs.StringVar(&cfg.Renderer, "renderer", cfg.Renderer, "render backend: auto, plot, chart or html")
	fs.IntVar(&cfg.Cols, "cols", cfg.Cols, "number of grid columns")
	fs.StringVar(&cfg.ScoresFile, "scores-file", cfg.ScoresFile, "log file name inside target_dir")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write Prometheus metrics in text format to this path")

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
	if len(positional) != 2 {
		fs.Usage()
		return nil, errUsage
	}
	return positional, nil
}

func newMetrics(cfg *config.Config) *metrics.Manager {
	return metrics.NewManager(
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithSubsystem(cfg.MetricsSubsystem),
		metrics.WithHistogramBuckets(cfg.MetricsBuckets),
		metrics.WithCustomLabels(cfg.MetricsLabels),
	)
}

func newService(cfg *config.Config, log logger.Logger, mgr *metrics.Manager) (*app.Service, error) {
	strategy, err := cleanup.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	kind, err := render.ParseKind(cfg.Renderer)
	if err != nil {
		return nil, err
	}
	return app.New(
		app.WithLogger(log),
		app.WithScoresFile(cfg.ScoresFile),
		app.WithStrategy(strategy),
		app.WithResampleWindow(cfg.ResampleWindow),
		app.WithSmoothing(cfg.ConvNum),
		app.WithStepScaleThreshold(cfg.StepScaleThreshold),
		app.WithRenderer(kind),
		app.WithLayout(layout.Options{
			Cols:         cfg.Cols,
			CellWidthIn:  cfg.CellWidthIn,
			CellHeightIn: cfg.CellHeightIn,
		}),
		app.WithMetrics(mgr),
	), nil
}
