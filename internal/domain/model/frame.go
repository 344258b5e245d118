package model

// Series is the cleaned value sequence of one metric column, aligned 1:1
// with Frame.Steps.
type Series struct {
	Name   string
	Values []float64
}

// Frame is a cleaned table ready to plot.
type Frame struct {
	// Steps is the (possibly rescaled) x axis.
	Steps []float64
	// RawMaxStep is the largest step before rescaling.
	RawMaxStep float64
	// Elapsed holds seconds aligned with Steps; nil when the log has no
	// elapsed column.
	Elapsed []float64
	// XLabel is "Step" or "Step [k]".
	XLabel string
	// Series holds one entry per metric column in source order.
	Series []Series
}

// Len returns the number of samples.
func (f *Frame) Len() int { return len(f.Steps) }

// MaxStep returns the largest finite value on the x axis. It returns 0 for an
// empty frame.
func (f *Frame) MaxStep() float64 {
	max := 0.0
	seen := false
	for _, s := range f.Steps {
		if IsGap(s) {
			continue
		}
		if !seen || s > max {
			max = s
			seen = true
		}
	}
	return max
}
