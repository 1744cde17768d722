package waverb

import "math"

// GaussianPulse builds an excitation sequence of the given length: a unit
// Gaussian peak ramping in from silence, smooth enough to keep the injected
// energy inside the grid's resolvable bandwidth. Injected additively into the
// listener node's pressure, one sample per simulation step; its length fixes
// the response length.
func GaussianPulse(length int) []float32 {
	if length < 1 {
		return nil
	}
	pulse := make([]float32, length)
	sigma := float64(length) / 10
	if sigma < 1 {
		sigma = 1
	}
	center := 4 * sigma
	if center > float64(length)/2 {
		center = float64(length) / 2
	}
	for i := range pulse {
		t := (float64(i) - center) / sigma
		pulse[i] = float32(math.Exp(-0.5 * t * t))
	}
	return pulse
}

// ImpulsePulse returns a single-sample unit excitation padded with zeros to
// the requested response length.
func ImpulsePulse(length int) []float32 {
	if length < 1 {
		return nil
	}
	pulse := make([]float32, length)
	pulse[0] = 1
	return pulse
}
