package scoregen

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned for configs that cannot produce a log.
var ErrInvalidConfig = errors.New("invalid generator config")

// Config holds configuration for a synthetic scores log.
type Config struct {
	Rows           int      // Number of samples
	Metrics        []string // Metric column names; names containing "loss" decay, others rise
	StepInterval   float64  // Steps between samples
	SecondsPerStep float64  // Wall-clock seconds per step, drives the elapsed column
	Noise          float64  // Relative noise amplitude
	Seed           uint64   // Random seed; equal seeds give equal logs
	Shuffle        bool     // Write rows out of step order
	MissingMetric  string   // Metric whose tail is written as None
	MissingFrom    int      // First row of the None tail; ignored when MissingMetric is empty
	OutputFile     string   // Destination path
}

// DefaultConfig returns a small two-metric log.
func DefaultConfig() *Config {
	return &Config{
		Rows:           defaultRows,
		Metrics:        []string{"loss", "reward"},
		StepInterval:   defaultStepInterval,
		SecondsPerStep: defaultSecondsPerStep,
		Noise:          defaultNoise,
		Seed:           1,
		OutputFile:     "scores.txt",
	}
}

// Validate checks the config.
func (c *Config) Validate() error {
	if c.Rows < 1 {
		return fmt.Errorf("%w: rows must be at least 1", ErrInvalidConfig)
	}
	if c.StepInterval <= 0 {
		return fmt.Errorf("%w: step interval must be positive", ErrInvalidConfig)
	}
	if c.SecondsPerStep < 0 || c.Noise < 0 {
		return fmt.Errorf("%w: seconds per step and noise must not be negative", ErrInvalidConfig)
	}
	if c.MissingMetric != "" {
		found := false
		for _, m := range c.Metrics {
			if m == c.MissingMetric {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: missing metric %q is not generated", ErrInvalidConfig, c.MissingMetric)
		}
		if c.MissingFrom < 0 || c.MissingFrom >= c.Rows {
			return fmt.Errorf("%w: missing-from row %d out of range", ErrInvalidConfig, c.MissingFrom)
		}
	}
	return nil
}
