package stream

import (
	"encoding/binary"

	"github.com/lucasb-eyer/go-colorful"
)

// Frame represents a frame of RGB pixels to display on an ledrx device.
type Frame struct {
	pixels []colorful.Color
}

// NewFrame creates a black Frame of n pixels.
func NewFrame(n int) *Frame {
	if n < 0 {
		n = 0
	}
	return &Frame{pixels: make([]colorful.Color, n)}
}

// Len returns the number of pixels.
func (f *Frame) Len() int { return len(f.pixels) }

// Pixel returns the colour of pixel i.
func (f *Frame) Pixel(i int) colorful.Color { return f.pixels[i] }

// Set changes the colour of pixel i.
func (f *Frame) Set(i int, c colorful.Color) { f.pixels[i] = c }

// Fill sets every pixel to c.
func (f *Frame) Fill(c colorful.Color) {
	for i := range f.pixels {
		f.pixels[i] = c
	}
}

// Blend merges two frames in HCL space. t is the share of f2; pixels missing
// from the shorter frame are taken from the longer one.
func (f *Frame) Blend(f2 *Frame, t float64) *Frame {
	n := len(f.pixels)
	if len(f2.pixels) > n {
		n = len(f2.pixels)
	}
	out := NewFrame(n)
	for i := 0; i < n; i++ {
		switch {
		case i >= len(f2.pixels):
			out.pixels[i] = f.pixels[i]
		case i >= len(f.pixels):
			out.pixels[i] = f2.pixels[i]
		default:
			out.pixels[i] = f.pixels[i].BlendHcl(f2.pixels[i], t).Clamped()
		}
	}
	return out
}

// MarshalBinary converts a Frame into binary data: a little endian uint16
// pixel count followed by one RGB triple per pixel.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 2, (len(f.pixels)*3)+2)
	binary.LittleEndian.PutUint16(data, uint16(len(f.pixels)))
	for _, p := range f.pixels {
		r, g, b := p.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}
