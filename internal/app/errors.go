package service

import "errors"

// Sentinel errors for the service.
var (
	// ErrNoMetrics is returned when a log has no metric column to plot.
	ErrNoMetrics = errors.New("no metric columns to plot")
)
