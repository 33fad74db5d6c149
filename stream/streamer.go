package stream

import (
	"log"
)

// Streamer renders tween values with an Animation and sends the frames to
// its sinks.
type Streamer struct {
	animation Animation
	sinks     []Sink

	nextAnimation       Animation
	transition          float64
	transitionIncrement float64
	last                *Frame
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(animation Animation, sinks ...Sink) *Streamer {
	return &Streamer{animation: animation, sinks: sinks}
}

// AddSink adds another display for the frames.
func (s *Streamer) AddSink(sink Sink) { s.sinks = append(s.sinks, sink) }

// SetAnimation switches to a. With frames > 0 the old animation is blended
// into the new one over that many frames.
func (s *Streamer) SetAnimation(a Animation, frames int) {
	if frames <= 0 || s.animation == nil {
		s.animation = a
		s.nextAnimation = nil
		return
	}
	s.nextAnimation = a
	s.transition = 0.0
	s.transitionIncrement = 1.0 / float64(frames)
}

// CalculateFrame renders value, advancing any transition by one frame.
func (s *Streamer) CalculateFrame(value float64) *Frame {
	if s.nextAnimation == nil {
		return s.animation.CalculateFrame(value)
	}

	s.transition += s.transitionIncrement
	if s.transition >= 1.0 {
		s.animation = s.nextAnimation
		s.nextAnimation = nil
		s.transition = 0.0
		return s.animation.CalculateFrame(value)
	}
	f1 := s.animation.CalculateFrame(value)
	f2 := s.nextAnimation.CalculateFrame(value)
	return f1.Blend(f2, s.transition)
}

// SendValue renders value and sends the frame to every sink. It has the
// signature of a tween frame callback.
func (s *Streamer) SendValue(value float64) {
	f := s.CalculateFrame(value)
	s.last = f
	for _, sink := range s.sinks {
		if err := sink.Send(f); err != nil {
			log.Printf("Sending frame: %v", err)
		}
	}
}

// LastFrame returns the most recently sent frame, or nil.
func (s *Streamer) LastFrame() *Frame { return s.last }
