// Package cleanup turns a raw scores table into a plottable one: it fixes row
// order, resamples or truncates, and normalizes the step axis.
package cleanup

import (
	"fmt"
	"strings"
)

// Strategy selects how missing and irregular samples are handled.
type Strategy int

const (
	// Truncate cuts every column at the first gap in any metric.
	Truncate Strategy = iota
	// Resample averages rows into fixed elapsed-time windows.
	Resample
)

func (s Strategy) String() string {
	switch s {
	case Truncate:
		return "truncate"
	case Resample:
		return "resample"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy accepts "truncate" or "resample" in any case. An empty string
// selects Truncate.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "truncate":
		return Truncate, nil
	case "resample":
		return Resample, nil
	default:
		return Truncate, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}
