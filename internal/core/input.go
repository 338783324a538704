package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionLaunch         // Space, Up - launch ball / fire bullets
	ActionConfirm        // Enter, Z, Space - confirm, advance dialogue
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
	ActionOptions        // O - open options panel (pauses)
	ActionSave           // Ctrl+S while paused - save snapshot
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionLaunch:
		return "Launch"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionOptions:
		return "Options"
	case ActionSave:
		return "Save"
	default:
		return "Unknown"
	}
}

// Pointer is the last known mouse/touch position in normalized
// playfield coordinates (0..1 on both axes).
type Pointer struct {
	X, Y   float64
	Active bool // Pointer moved since the last keyboard movement
	Tapped bool // Click/tap happened this frame
}

// InputFrame represents the held input state during one simulation tick.
// There is no input queue: an action is either held this frame or not.
type InputFrame struct {
	Actions map[Action]bool
	Pointer Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions and the pointer tap for the next frame.
// The pointer position is kept, it is state rather than an event.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer.Tapped = false
}

// HorizontalAxis returns -1, 0 or 1 from held Left/Right.
func (f InputFrame) HorizontalAxis() float64 {
	axis := 0.0
	if f.Has(ActionLeft) {
		axis--
	}
	if f.Has(ActionRight) {
		axis++
	}
	return axis
}

// VerticalAxis returns -1, 0 or 1 from held Up/Down.
func (f InputFrame) VerticalAxis() float64 {
	axis := 0.0
	if f.Has(ActionUp) {
		axis--
	}
	if f.Has(ActionDown) {
		axis++
	}
	return axis
}
