// Package util holds small numeric helpers shared by the animations.
package util

import (
	"math/rand"

	"github.com/fogleman/ease"
)

// RandomRange returns a value drawn uniformly from [min, max).
func RandomRange(r *rand.Rand, min float64, max float64) float64 {
	return r.Float64()*(max-min) + min
}

// GenerateLut builds a symmetric pulse of length entries: fn rises over the
// first half and falls back over the second. A nil fn uses InOutQuad.
func GenerateLut(length int, fn func(float64) float64) []float64 {
	if length <= 0 {
		return nil
	}
	if fn == nil {
		fn = ease.InOutQuad
	}
	lut := make([]float64, length)
	half := length / 2
	if half == 0 {
		lut[0] = fn(1)
		return lut
	}
	increment := 1.0 / float64(half)
	for i, j := 0, length-1; i < half; i, j = i+1, j-1 {
		value := fn(float64(i) * increment)
		lut[i] = value
		lut[j] = value
	}
	if length%2 == 1 {
		lut[half] = fn(1)
	}
	return lut
}
