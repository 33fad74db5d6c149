package stream

import (
	"github.com/gdamore/tcell/v2"
)

// TerminalSink previews frames on a terminal, one cell per pixel, wrapping at
// the screen width. Pixels past the last row are dropped.
type TerminalSink struct {
	screen tcell.Screen
}

// NewTerminalSink wraps an initialised screen.
func NewTerminalSink(screen tcell.Screen) *TerminalSink {
	return &TerminalSink{screen: screen}
}

// OpenTerminal initialises the process terminal for a TerminalSink.
func OpenTerminal() (*TerminalSink, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.Clear()
	return NewTerminalSink(screen), nil
}

// Send draws f and shows it.
func (s *TerminalSink) Send(f *Frame) error {
	w, h := s.screen.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	for i, p := range f.pixels {
		x, y := i%w, i/w
		if y >= h {
			break
		}
		r, g, b := p.Clamped().RGB255()
		style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
		s.screen.SetContent(x, y, ' ', nil, style)
	}
	s.screen.Show()
	return nil
}

// Close restores the terminal.
func (s *TerminalSink) Close() {
	s.screen.Fini()
}
