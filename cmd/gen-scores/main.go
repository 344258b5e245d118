package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/okian/scoreplot/internal/scoregen"
	"github.com/okian/scoreplot/pkg/logger"
)

func main() {
	defaults := scoregen.DefaultConfig()
	var (
		output         = flag.String("output", defaults.OutputFile, "Output file")
		rows           = flag.Int("rows", defaults.Rows, "Number of samples")
		metricNames    = flag.String("metrics", strings.Join(defaults.Metrics, ","), "Comma-separated metric names")
		interval       = flag.Float64("interval", defaults.StepInterval, "Steps between samples")
		secondsPerStep = flag.Float64("seconds-per-step", defaults.SecondsPerStep, "Wall-clock seconds per step")
		noise          = flag.Float64("noise", defaults.Noise, "Relative noise amplitude")
		seed           = flag.Uint64("seed", defaults.Seed, "Random seed")
		shuffle        = flag.Bool("shuffle", false, "Write rows out of step order")
		missing        = flag.String("missing", "", "Metric whose tail is written as None")
		missingFrom    = flag.Int("missing-from", 0, "First row of the None tail")
		help           = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		scoregen.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	var names []string
	for _, n := range strings.Split(*metricNames, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}

	cfg := &scoregen.Config{
		Rows:           *rows,
		Metrics:        names,
		StepInterval:   *interval,
		SecondsPerStep: *secondsPerStep,
		Noise:          *noise,
		Seed:           *seed,
		Shuffle:        *shuffle,
		MissingMetric:  *missing,
		MissingFrom:    *missingFrom,
		OutputFile:     *output,
	}

	if err := scoregen.Run(context.Background(), cfg); err != nil {
		os.Stderr.WriteString("generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
