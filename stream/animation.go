package stream

import (
	"github.com/lucasb-eyer/go-colorful"
)

// An Animation renders the frame for an eased tween value. Values normally
// lie in [0, 1] but overshooting curves can leave that range.
type Animation interface {
	CalculateFrame(value float64) *Frame
}

// A Fade is an Animation that blends the whole strip from one colour to
// another.
type Fade struct {
	numPixels int
	from      colorful.Color
	to        colorful.Color
}

// NewFade creates an instance of a Fade object.
func NewFade(numPixels int, from, to colorful.Color) *Fade {
	return &Fade{numPixels: numPixels, from: from, to: to}
}

// CalculateFrame creates a new Frame instance.
func (a *Fade) CalculateFrame(value float64) *Frame {
	f := NewFrame(a.numPixels)
	f.Fill(a.from.BlendHcl(a.to, value).Clamped())
	return f
}
