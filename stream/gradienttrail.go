package stream

import (
	"math"
)

// A GradientTrail is an Animation that slides a gradient along an led strip.
// A value of 1 moves the gradient by one full trail length.
type GradientTrail struct {
	numPixels   int
	gradient    GradientTable
	trailLength int
	saturation  float64
	luminance   float64
}

// NewGradientTrail creates an instance of a GradientTrail object.
func NewGradientTrail(numPixels int, gradient GradientTable, trailLength int) *GradientTrail {
	if trailLength <= 0 {
		trailLength = numPixels
	}
	if trailLength <= 0 {
		trailLength = 1
	}
	return &GradientTrail{
		numPixels:   numPixels,
		gradient:    gradient,
		trailLength: trailLength,
		saturation:  1.0,
		luminance:   0.05,
	}
}

// SetLuminance changes the HCL luminance of every pixel.
func (g *GradientTrail) SetLuminance(l float64) { g.luminance = l }

// CalculateFrame creates a new Frame instance.
func (g *GradientTrail) CalculateFrame(value float64) *Frame {
	f := NewFrame(g.numPixels)
	trail := float64(g.trailLength)
	offset := value * trail
	for i := 0; i < g.numPixels; i++ {
		pos := math.Mod(float64(i)-offset, trail)
		if pos < 0 {
			pos += trail
		}
		f.pixels[i] = g.gradient.GetColor(pos/trail, g.saturation, g.luminance).Clamped()
	}

	return f
}
