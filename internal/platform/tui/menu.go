package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brick-arcade/internal/account"
	"github.com/vovakirdan/brick-arcade/internal/registry"
)

// MenuEntry is the kind of a main menu row.
type MenuEntry int

const (
	EntryGame MenuEntry = iota
	EntryRanking
	EntryOptions
	EntryLogin
	EntryRegister
	EntryRecover
	EntryLogout
)

// MenuItem represents a selectable row in the menu.
type MenuItem struct {
	Entry  MenuEntry
	GameID string
	Title  string
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	account   account.Account
	notice    string
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
}

// menuItems lists the games followed by the account entries. Trusted
// accounts (SSH users) cannot log out or switch.
func menuItems(acc account.Account, trusted bool) []MenuItem {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+5)
	for _, g := range games {
		items = append(items, MenuItem{Entry: EntryGame, GameID: g.ID, Title: g.Title})
	}
	items = append(items,
		MenuItem{Entry: EntryRanking, Title: "Ranking"},
		MenuItem{Entry: EntryOptions, Title: "Options"},
	)
	switch {
	case trusted:
	case acc.IsGuest():
		items = append(items,
			MenuItem{Entry: EntryLogin, Title: "Log in"},
			MenuItem{Entry: EntryRegister, Title: "Create account"},
			MenuItem{Entry: EntryRecover, Title: "Forgot password"},
		)
	default:
		items = append(items, MenuItem{Entry: EntryLogout, Title: "Log out"})
	}
	return items
}

// NewMenuModel creates a new menu model.
func NewMenuModel(acc account.Account, trusted bool, width, height int) MenuModel {
	return MenuModel{
		items:     menuItems(acc, trusted),
		width:     width,
		height:    height,
		account:   acc,
		keyMapper: NewKeyMapper(),
	}
}

// WithNotice returns the menu showing a one-line message under the title.
func (m MenuModel) WithNotice(notice string) MenuModel {
	m.notice = notice
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  B R I C K   A R C A D E  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render(centerText("Playing as "+m.account.Name, m.width)))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(okStyle.Render(centerText(m.notice, m.width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		if i > 0 && item.Entry != EntryGame && m.items[i-1].Entry == EntryGame {
			b.WriteString("\n")
		}
		line := "  " + item.Title
		if i == m.cursor {
			line = cursorText.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(centerText("Up/Down: Navigate  |  Enter: Select  |  Q: Quit", m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}
