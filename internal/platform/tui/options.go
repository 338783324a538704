package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brick-arcade/internal/account"
	"github.com/vovakirdan/brick-arcade/internal/storage"
)

var difficulties = []string{"easy", "normal", "hard"}

const (
	optDifficulty = iota
	optMute
	optAngleClamp
	optSave
	optCount
)

// OptionsModel edits an account's preferences.
type OptionsModel struct {
	store   *storage.Store
	account account.Account
	opts    storage.Options
	cursor  int
	width   int
	height  int
	keys    *KeyMapper

	saved    bool
	err      error
	back     bool
	quitting bool
}

// NewOptionsModel loads acc's options from store.
func NewOptionsModel(store *storage.Store, acc account.Account, width, height int) OptionsModel {
	m := OptionsModel{
		store:   store,
		account: acc,
		opts:    storage.DefaultOptions(),
		width:   width,
		height:  height,
		keys:    NewKeyMapper(),
	}
	if store == nil {
		m.err = errNoStorage
		return m
	}
	if o, err := store.Options(acc.Namespace); err != nil {
		m.err = err
	} else {
		m.opts = o
	}
	return m
}

// Init initializes the panel.
func (m OptionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m OptionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.handleKey(m.keys.MapKeyToMenuAction(msg))
	}
	return m, nil
}

func (m OptionsModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
	case MenuActionUp:
		m.cursor = (m.cursor - 1 + optCount) % optCount
	case MenuActionDown:
		m.cursor = (m.cursor + 1) % optCount
	case MenuActionLeft:
		m.change(-1)
	case MenuActionRight:
		m.change(1)
	case MenuActionSelect:
		if m.cursor == optSave {
			m.save()
		} else {
			m.change(1)
		}
	}
	return m, nil
}

// change steps the option under the cursor.
func (m *OptionsModel) change(dir int) {
	m.saved = false
	switch m.cursor {
	case optDifficulty:
		i := indexOf(difficulties, m.opts.Difficulty)
		m.opts.Difficulty = difficulties[(i+dir+len(difficulties))%len(difficulties)]
	case optMute:
		m.opts.Mute = !m.opts.Mute
	case optAngleClamp:
		m.opts.AngleClamp = !m.opts.AngleClamp
	}
}

func (m *OptionsModel) save() {
	m.err = nil
	if m.store == nil {
		m.err = errNoStorage
		return
	}
	if err := m.store.PutOptions(m.account.Namespace, m.opts); err != nil {
		m.err = err
		return
	}
	m.saved = true
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return 1
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// View renders the panel.
func (m OptionsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("OPTIONS"))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Account: " + m.account.Name))
	b.WriteString("\n\n")

	rows := []string{
		fmt.Sprintf("Difficulty   < %-6s >", m.opts.Difficulty),
		fmt.Sprintf("Sound        < %-6s >", onOff(!m.opts.Mute)),
		fmt.Sprintf("Angle clamp  < %-6s >", onOff(m.opts.AngleClamp)),
		"Save",
	}
	for i, row := range rows {
		if i == m.cursor {
			b.WriteString(cursorText.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(authMessage(m.err)))
		b.WriteString("\n")
	case m.saved:
		b.WriteString(okStyle.Render("Saved."))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("Left/Right: Change  |  Enter: Toggle/Save  |  Esc: Back"))

	return centerBlock(panelStyle.Render(b.String()), m.width, m.height)
}

// Options returns the edited options.
func (m OptionsModel) Options() storage.Options {
	return m.opts
}

// Saved reports whether the last change was written.
func (m OptionsModel) Saved() bool {
	return m.saved
}

// WantsBack returns true if user pressed back.
func (m OptionsModel) WantsBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit.
func (m OptionsModel) IsQuitting() bool {
	return m.quitting
}
