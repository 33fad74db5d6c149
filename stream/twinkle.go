package stream

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledtween/util"
)

const twinkleLutLength = 64

type twinkleParticle struct {
	phase int
	gain  float64
}

// A Twinkle is an Animation that pulses random particles over a background.
// Each particle runs the same pulse from its own phase; the tween value
// moves every particle once through the pulse.
type Twinkle struct {
	numPixels  int
	foreColour colorful.Color
	backColour colorful.Color
	lut        []float64
	particles  map[int]twinkleParticle
}

// NewTwinkle creates an instance of a Twinkle object. Particles are placed
// with r so a seeded source gives a repeatable strip.
func NewTwinkle(r *rand.Rand, numPixels, numParticles int, foreColour, backColour colorful.Color) *Twinkle {
	t := &Twinkle{
		numPixels:  numPixels,
		foreColour: foreColour,
		backColour: backColour,
		lut:        util.GenerateLut(twinkleLutLength, nil),
		particles:  make(map[int]twinkleParticle),
	}
	if numPixels <= 0 {
		return t
	}
	for i := 0; i < numParticles; i++ {
		t.particles[r.Intn(numPixels)] = twinkleParticle{
			phase: r.Intn(twinkleLutLength),
			gain:  util.RandomRange(r, 0.5, 1.0),
		}
	}

	return t
}

// CalculateFrame creates a new Frame instance.
func (t *Twinkle) CalculateFrame(value float64) *Frame {
	f := NewFrame(t.numPixels)
	f.Fill(t.backColour)

	shift := int(value * twinkleLutLength)
	for i, p := range t.particles {
		idx := (p.phase + shift) % twinkleLutLength
		if idx < 0 {
			idx += twinkleLutLength
		}
		f.pixels[i] = t.backColour.BlendHcl(t.foreColour, t.lut[idx]*p.gain).Clamped()
	}

	return f
}
