package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/brick-arcade/internal/games/brickboss"
)

// BrickBossChoice is what the start screen asks for.
type BrickBossChoice int

const (
	BrickBossNone BrickBossChoice = iota
	BrickBossNewGame
	BrickBossContinue
)

// BrickBossMenuModel offers a new run or continuing the saved one.
type BrickBossMenuModel struct {
	saved     *brickboss.SavedGame
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	choice    BrickBossChoice
	quitting  bool
	back      bool
}

// NewBrickBossMenuModel creates the start screen. saved is nil when the
// account has no snapshot.
func NewBrickBossMenuModel(saved *brickboss.SavedGame, width, height int) BrickBossMenuModel {
	m := BrickBossMenuModel{
		saved:     saved,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	if saved != nil {
		m.cursor = 1
	}
	return m
}

func (m BrickBossMenuModel) entries() []string {
	entries := []string{"New game"}
	if m.saved != nil {
		entries = append(entries, fmt.Sprintf("Continue (stage %d, %s pts, %d lives)",
			m.saved.Stage, humanize.Comma(int64(m.saved.Score)), m.saved.Lives))
	}
	return entries
}

// Init initializes the model.
func (m BrickBossMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m BrickBossMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(m.keyMapper.MapKeyToMenuAction(msg))
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m BrickBossMenuModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.entries())-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if m.cursor == 0 {
			m.choice = BrickBossNewGame
		} else {
			m.choice = BrickBossContinue
		}
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

// View renders the start screen.
func (m BrickBossMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("B R I C K   B O S S", m.width)))
	b.WriteString("\n\n")

	for i, entry := range m.entries() {
		line := "  " + entry
		if i == m.cursor {
			line = cursorText.Render("> " + entry)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width)))

	return b.String()
}

// Choice returns the selection, BrickBossNone while choosing.
func (m BrickBossMenuModel) Choice() BrickBossChoice {
	return m.choice
}

// Saved returns the snapshot offered for continuing.
func (m BrickBossMenuModel) Saved() *brickboss.SavedGame {
	return m.saved
}

// IsQuitting returns true if user wants to quit.
func (m BrickBossMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m BrickBossMenuModel) WantsBack() bool {
	return m.back
}
