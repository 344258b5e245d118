// Package smoothing implements the centered moving average applied to metric
// series before plotting.
package smoothing

import (
	"fmt"
	"math"
)

// MovingAverage returns the centered moving average of values over a uniform
// window of width k. The output has the same length as values.
//
// Edge rule: each output is the mean of the taps that fall inside the series
// and hold a value, so the kernel is renormalized near the edges and around
// gaps. The window spans k/2 samples to the left and k-1-k/2 to the right.
// Inputs that are NaN stay NaN in the output.
func MovingAverage(values []float64, k int) ([]float64, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, k)
	}
	out := make([]float64, len(values))
	if k == 1 {
		copy(out, values)
		return out, nil
	}

	left := k / 2
	right := k - 1 - left
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = v
			continue
		}
		lo := max(0, i-left)
		hi := min(len(values)-1, i+right)
		sum, n := 0.0, 0
		for j := lo; j <= hi; j++ {
			if math.IsNaN(values[j]) {
				continue
			}
			sum += values[j]
			n++
		}
		out[i] = sum / float64(n)
	}
	return out, nil
}
