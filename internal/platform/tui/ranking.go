package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/brick-arcade/internal/storage"
)

// Ranking layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the account sidebar
	sidebarWidth       = 20
)

// RankingKeyMap defines the key bindings for the ranking screen.
type RankingKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextAccount key.Binding
	PrevAccount key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RankingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextAccount, k.PrevAccount, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RankingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextAccount, k.PrevAccount},
		{k.Back, k.Quit},
	}
}

// DefaultRankingKeyMap returns default key bindings.
func DefaultRankingKeyMap() RankingKeyMap {
	return RankingKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextAccount: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next account"),
		),
		PrevAccount: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev account"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RankingModel shows the top results of every account.
type RankingModel struct {
	rankings []storage.AccountRanking
	cursor   int
	table    table.Model
	help     help.Model
	keys     RankingKeyMap
	now      func() time.Time
	width    int
	height   int
	loadErr  error

	quitting  bool
	goingBack bool
}

// NewRankingModel loads all rankings from store and selects the ranking of
// namespace when it has one.
func NewRankingModel(store *storage.Store, namespace string, width, height int) RankingModel {
	m := RankingModel{
		keys:   DefaultRankingKeyMap(),
		help:   help.New(),
		now:    time.Now,
		width:  width,
		height: height,
	}
	if store != nil {
		m.rankings, m.loadErr = store.AllRankings()
	} else {
		m.loadErr = errNoStorage
	}
	for i, r := range m.rankings {
		if r.Namespace == namespace {
			m.cursor = i
		}
	}
	m.table = m.createTable()
	m.updateRows()
	return m
}

func (m RankingModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

// createTable creates a new table with appropriate columns.
func (m *RankingModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "When", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// rows formats the selected account's ranking.
func (m RankingModel) rows() []table.Row {
	if len(m.rankings) == 0 {
		return nil
	}
	entries := m.rankings[m.cursor].Ranking
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			humanize.Comma(int64(e.Score)),
			humanize.RelTime(e.Timestamp, m.now(), "ago", "from now"),
		}
	}
	return rows
}

func (m *RankingModel) updateRows() {
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

// Init initializes the ranking model.
func (m RankingModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the ranking screen.
func (m RankingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextAccount):
			if len(m.rankings) > 0 {
				m.cursor = (m.cursor + 1) % len(m.rankings)
				m.updateRows()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevAccount):
			if len(m.rankings) > 0 {
				m.cursor = (m.cursor - 1 + len(m.rankings)) % len(m.rankings)
				m.updateRows()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the ranking screen.
func (m RankingModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RANKING"
	if len(m.rankings) > 0 {
		title = fmt.Sprintf("RANKING - %s", m.rankings[m.cursor].Namespace)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := tableStyle.Render(m.tableContent())

	if m.showSidebar() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", content))
	} else {
		if len(m.rankings) > 1 {
			b.WriteString(centerText(fmt.Sprintf("< %s >", m.rankings[m.cursor].Namespace), m.width))
			b.WriteString("\n\n")
		}
		b.WriteString(content)
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// sidebar lists accounts with their best score.
func (m RankingModel) sidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Accounts\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, r := range m.rankings {
		prefix := "  "
		line := lipgloss.NewStyle()
		if i == m.cursor {
			prefix = "> "
			line = cursorText
		}
		name := r.Namespace
		if maxLen := sidebarWidth - 12; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sb.WriteString(line.Render(fmt.Sprintf("%s%-*s %6s", prefix, sidebarWidth-12, name, humanize.Comma(int64(r.Ranking.Best())))))
		sb.WriteString("\n")
	}
	return style.Render(sb.String())
}

func (m RankingModel) tableContent() string {
	if m.loadErr != nil {
		return errorStyle.Render(authMessage(m.loadErr))
	}
	if len(m.rankings) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No results recorded yet.\nFinish a Brick Boss run to enter the ranking!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RankingModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RankingModel) IsQuitting() bool {
	return m.quitting
}
