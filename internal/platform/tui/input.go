package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brick-arcade/internal/core"
)

// HoldTimeout is how long a key counts as held after its last press or
// repeat. Terminals report no key releases, only repeats.
const HoldTimeout = 150 * time.Millisecond

// InputSampler turns terminal key and mouse messages into the held state
// sampled once per frame.
type InputSampler struct {
	held      map[core.Action]time.Time
	momentary map[core.Action]bool
	pointer   core.Pointer
	keys      *KeyMapper
}

// NewInputSampler creates an empty sampler.
func NewInputSampler() *InputSampler {
	return &InputSampler{
		held:      make(map[core.Action]time.Time),
		momentary: make(map[core.Action]bool),
		keys:      NewKeyMapper(),
	}
}

// Key records a key press at now. It reports whether the key asks to quit.
func (s *InputSampler) Key(msg tea.KeyMsg, now time.Time) (quit bool) {
	b := s.keys.MapKey(msg)
	for _, a := range b.Held {
		s.held[a] = now
		if a == core.ActionLeft || a == core.ActionRight {
			// Keyboard movement takes the paddle back from the mouse.
			s.pointer.Active = false
		}
	}
	for _, a := range b.Momentary {
		s.momentary[a] = true
	}
	return b.Quit
}

// Mouse records pointer motion and clicks. x and y are normalized to the
// playfield.
func (s *InputSampler) Mouse(x, y float64, click bool) {
	s.pointer.X = core.ClampF(x, 0, 1)
	s.pointer.Y = core.ClampF(y, 0, 1)
	s.pointer.Active = true
	if click {
		s.pointer.Tapped = true
	}
}

// Frame returns the input for the frame at now and consumes momentary
// actions and taps.
func (s *InputSampler) Frame(now time.Time) core.InputFrame {
	f := core.NewInputFrame()
	for a, at := range s.held {
		if now.Sub(at) > HoldTimeout {
			delete(s.held, a)
			continue
		}
		f.Set(a)
	}
	for a := range s.momentary {
		f.Set(a)
	}
	clear(s.momentary)

	f.Pointer = s.pointer
	s.pointer.Tapped = false
	return f
}

// Release forgets all held keys, e.g. when switching screens.
func (s *InputSampler) Release() {
	clear(s.held)
	clear(s.momentary)
	s.pointer.Tapped = false
}

// playfieldPointer maps a mouse cell to normalized coordinates inside the
// framed playfield both games draw: one HUD row, then a box border.
func playfieldPointer(mx, my, screenW, screenH int) (x, y float64) {
	innerW := max(screenW-2, 1)
	innerH := max(screenH-3, 1)
	x = (float64(mx-1) + 0.5) / float64(innerW)
	y = (float64(my-2) + 0.5) / float64(innerH)
	return x, y
}
