package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brick-arcade/internal/core"
)

// Binding is what one key press means to the game.
// Held actions stay down while the terminal repeats the key; momentary
// actions reach exactly one frame per press.
type Binding struct {
	Held      []core.Action
	Momentary []core.Action
	Quit      bool
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a binding.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) Binding {
	switch msg.String() {
	case "ctrl+c", "q":
		return Binding{Quit: true}
	case "left", "a", "h":
		return Binding{Held: []core.Action{core.ActionLeft}}
	case "right", "d", "l":
		return Binding{Held: []core.Action{core.ActionRight}}
	case "up", "w", "k":
		return Binding{Held: []core.Action{core.ActionUp}}
	case "down", "j":
		return Binding{Held: []core.Action{core.ActionDown}}
	case "s":
		// Walks down in Soul Trial, saves from the Brick Boss pause screen.
		return Binding{Held: []core.Action{core.ActionDown}, Momentary: []core.Action{core.ActionSave}}
	case "ctrl+s":
		return Binding{Momentary: []core.Action{core.ActionSave}}
	case " ":
		return Binding{Held: []core.Action{core.ActionLaunch}}
	case "enter", "z":
		return Binding{Momentary: []core.Action{core.ActionConfirm}}
	case "p":
		return Binding{Momentary: []core.Action{core.ActionPause}}
	case "o":
		return Binding{Momentary: []core.Action{core.ActionOptions}}
	case "r":
		return Binding{Momentary: []core.Action{core.ActionRestart}}
	case "b", "esc":
		return Binding{Momentary: []core.Action{core.ActionBack}}
	}
	return Binding{}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
