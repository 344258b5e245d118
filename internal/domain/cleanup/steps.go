package cleanup

import "math"

// Axis labels.
const (
	LabelStep      = "Step"
	LabelKiloStep  = "Step [k]"
	DefaultScaleAt = 100_000
	kilo           = 1000
)

// NormalizeSteps rescales steps to thousands when their maximum exceeds
// threshold. It returns a new slice and the matching axis label.
func NormalizeSteps(steps []float64, threshold float64) ([]float64, string) {
	out := append([]float64(nil), steps...)
	if maxFinite(steps) <= threshold {
		return out, LabelStep
	}
	for i := range out {
		out[i] /= kilo
	}
	return out, LabelKiloStep
}

func maxFinite(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		if !math.IsNaN(x) && x > m {
			m = x
		}
	}
	return m
}

// SamplingInterval returns steps[1]-steps[0]. ok is false with fewer than
// two rows or when either value is missing.
func SamplingInterval(steps []float64) (float64, bool) {
	if len(steps) < 2 || math.IsNaN(steps[0]) || math.IsNaN(steps[1]) {
		return 0, false
	}
	return steps[1] - steps[0], true
}

// MinutesPerKiloStep returns the elapsed wall-clock minutes per 1000 steps
// measured at the last sample. ok is false when the last step is not above
// 1000 or a value is missing.
func MinutesPerKiloStep(steps, elapsed []float64) (float64, bool) {
	n := len(steps)
	if n == 0 || len(elapsed) != n {
		return 0, false
	}
	last, secs := steps[n-1], elapsed[n-1]
	if math.IsNaN(last) || math.IsNaN(secs) || last <= kilo {
		return 0, false
	}
	return secs / last * kilo / 60, true
}
