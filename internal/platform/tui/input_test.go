package tui

import (
	"math"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brick-arcade/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name      string
		msg       tea.KeyMsg
		held      []core.Action
		momentary []core.Action
		quit      bool
	}{
		{"q quits", runeKey("q"), nil, nil, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, nil, nil, true},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, []core.Action{core.ActionLeft}, nil, false},
		{"a moves left", runeKey("a"), []core.Action{core.ActionLeft}, nil, false},
		{"d moves right", runeKey("d"), []core.Action{core.ActionRight}, nil, false},
		{"up is held", tea.KeyMsg{Type: tea.KeyUp}, []core.Action{core.ActionUp}, nil, false},
		{"space launches", runeKey(" "), []core.Action{core.ActionLaunch}, nil, false},
		{"s walks down and saves", runeKey("s"), []core.Action{core.ActionDown}, []core.Action{core.ActionSave}, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, nil, []core.Action{core.ActionConfirm}, false},
		{"z confirms", runeKey("z"), nil, []core.Action{core.ActionConfirm}, false},
		{"p pauses", runeKey("p"), nil, []core.Action{core.ActionPause}, false},
		{"o opens options", runeKey("o"), nil, []core.Action{core.ActionOptions}, false},
		{"r restarts", runeKey("r"), nil, []core.Action{core.ActionRestart}, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, nil, []core.Action{core.ActionBack}, false},
		{"unbound key", runeKey("x"), nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := km.MapKey(tt.msg)
			if b.Quit != tt.quit {
				t.Errorf("Quit = %v, want %v", b.Quit, tt.quit)
			}
			if !sameActions(b.Held, tt.held) {
				t.Errorf("Held = %v, want %v", b.Held, tt.held)
			}
			if !sameActions(b.Momentary, tt.momentary) {
				t.Errorf("Momentary = %v, want %v", b.Momentary, tt.momentary)
			}
		})
	}
}

func sameActions(a, b []core.Action) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestInputSamplerHoldTimeout(t *testing.T) {
	s := NewInputSampler()
	t0 := time.Unix(1000, 0)

	s.Key(tea.KeyMsg{Type: tea.KeyLeft}, t0)

	if f := s.Frame(t0.Add(HoldTimeout / 2)); !f.Has(core.ActionLeft) {
		t.Error("left should be held within the timeout")
	}
	if f := s.Frame(t0.Add(HoldTimeout - time.Millisecond)); !f.Has(core.ActionLeft) {
		t.Error("left should stay held across frames")
	}
	if f := s.Frame(t0.Add(HoldTimeout + time.Millisecond)); f.Has(core.ActionLeft) {
		t.Error("left should be released after the timeout")
	}
}

func TestInputSamplerRepeatExtendsHold(t *testing.T) {
	s := NewInputSampler()
	t0 := time.Unix(1000, 0)

	s.Key(tea.KeyMsg{Type: tea.KeyRight}, t0)
	s.Key(tea.KeyMsg{Type: tea.KeyRight}, t0.Add(100*time.Millisecond))

	if f := s.Frame(t0.Add(200 * time.Millisecond)); !f.Has(core.ActionRight) {
		t.Error("key repeat should extend the hold")
	}
}

func TestInputSamplerMomentaryOnce(t *testing.T) {
	s := NewInputSampler()
	t0 := time.Unix(1000, 0)

	s.Key(runeKey("p"), t0)

	if f := s.Frame(t0); !f.Has(core.ActionPause) {
		t.Fatal("pause should reach the first frame")
	}
	if f := s.Frame(t0.Add(time.Millisecond)); f.Has(core.ActionPause) {
		t.Error("pause should reach exactly one frame")
	}
}

func TestInputSamplerQuit(t *testing.T) {
	s := NewInputSampler()
	if !s.Key(runeKey("q"), time.Now()) {
		t.Error("q should report quit")
	}
	if s.Key(runeKey("a"), time.Now()) {
		t.Error("a should not report quit")
	}
}

func TestInputSamplerPointer(t *testing.T) {
	s := NewInputSampler()
	t0 := time.Unix(1000, 0)

	s.Mouse(1.5, -0.2, true)
	f := s.Frame(t0)
	if !f.Pointer.Active || !f.Pointer.Tapped {
		t.Fatalf("pointer = %+v, want active and tapped", f.Pointer)
	}
	if f.Pointer.X != 1 || f.Pointer.Y != 0 {
		t.Errorf("pointer = (%v, %v), want clamped to (1, 0)", f.Pointer.X, f.Pointer.Y)
	}

	f = s.Frame(t0.Add(time.Millisecond))
	if f.Pointer.Tapped {
		t.Error("tap should reach exactly one frame")
	}
	if !f.Pointer.Active {
		t.Error("pointer should stay active without keyboard movement")
	}

	s.Key(tea.KeyMsg{Type: tea.KeyLeft}, t0)
	if f := s.Frame(t0.Add(2 * time.Millisecond)); f.Pointer.Active {
		t.Error("keyboard movement should take over from the pointer")
	}
}

func TestInputSamplerRelease(t *testing.T) {
	s := NewInputSampler()
	t0 := time.Unix(1000, 0)

	s.Key(tea.KeyMsg{Type: tea.KeyLeft}, t0)
	s.Key(runeKey("p"), t0)
	s.Release()

	f := s.Frame(t0)
	if f.Has(core.ActionLeft) || f.Has(core.ActionPause) {
		t.Error("Release should drop held and momentary actions")
	}
}

func TestPlayfieldPointer(t *testing.T) {
	const eps = 1e-9

	tests := []struct {
		name   string
		mx, my int
		wantX  float64
		wantY  float64
	}{
		{"first inner cell", 1, 2, 0.5 / 80, 0.5 / 24},
		{"last inner cell", 80, 25, 79.5 / 80, 23.5 / 24},
		{"center", 40, 13, 39.5 / 80, 11.5 / 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := playfieldPointer(tt.mx, tt.my, 82, 27)
			if math.Abs(x-tt.wantX) > eps || math.Abs(y-tt.wantY) > eps {
				t.Errorf("playfieldPointer(%d, %d) = (%v, %v), want (%v, %v)", tt.mx, tt.my, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}
