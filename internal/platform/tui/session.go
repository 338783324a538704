package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brick-arcade/internal/account"
	"github.com/vovakirdan/brick-arcade/internal/cloudsync"
	"github.com/vovakirdan/brick-arcade/internal/core"
	"github.com/vovakirdan/brick-arcade/internal/games/brickboss"
	"github.com/vovakirdan/brick-arcade/internal/registry"
)

type screen int

const (
	screenMenu screen = iota
	screenBrickBossMenu
	screenGame
	screenRanking
	screenOptions
	screenLogin
)

// downloadTimeout bounds the cloud pull that follows a login.
const downloadTimeout = 5 * time.Second

// gameTick is a TickMsg stamped with the game it was scheduled for, so a
// tick still in flight when a game ends never reaches the next one.
type gameTick struct {
	gen  int
	tick TickMsg
}

// syncedMsg reports the cloud pull for an account.
type syncedMsg struct {
	namespace string
	applied   bool
	err       error
}

// SessionModel manages the full arcade session flow: menu, account
// screens, ranking and games. It is the top-level model for both local
// and SSH sessions.
type SessionModel struct {
	svc     Services
	config  core.RuntimeConfig
	account account.Account
	trusted bool

	screen  screen
	menu    MenuModel
	bbMenu  BrickBossMenuModel
	pending registry.Game
	game    *GameModel
	gen     int
	ranking RankingModel
	options OptionsModel
	login   LoginModel

	quitting bool
}

// NewSessionModel creates a session for acc. Trusted sessions keep their
// account for their whole life, as SSH sessions do.
func NewSessionModel(svc Services, cfg core.RuntimeConfig, acc account.Account, trusted bool) SessionModel {
	return SessionModel{
		svc:     svc,
		config:  cfg,
		account: acc,
		trusted: trusted,
		menu:    NewMenuModel(acc, trusted, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if !m.account.IsGuest() {
		return downloadCmd(m.svc.Mirror, m.account.Namespace)
	}
	return m.menu.Init()
}

// Account returns the account playing.
func (m SessionModel) Account() account.Account {
	return m.account
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case gameTick:
		if m.screen != screenGame || msg.gen != m.gen {
			return m, nil
		}
		return m.updateGame(msg.tick)

	case TickMsg:
		// Unstamped ticks belong to no game.
		return m, nil

	case syncedMsg:
		return m.handleSynced(msg), nil
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenBrickBossMenu:
		return m.updateBrickBossMenu(msg)
	case screenRanking:
		return m.updateRanking(msg)
	case screenOptions:
		return m.updateOptions(msg)
	case screenLogin:
		return m.updateLogin(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) toMenu(notice string) (SessionModel, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.account, m.trusted, m.config.ScreenW, m.config.ScreenH).WithNotice(notice)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		return m.quit()
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	w, h := m.config.ScreenW, m.config.ScreenH
	switch selected.Entry {
	case EntryGame:
		game, err := registry.Create(selected.GameID)
		if err != nil {
			m.svc.log().Error("cannot create game", "game", selected.GameID, "err", err)
			return m.toMenu("")
		}
		if _, ok := game.(*brickboss.Game); ok {
			var saved *brickboss.SavedGame
			if s, found := m.svc.loadSaved(m.account); found {
				saved = &s
			}
			m.pending = game
			m.bbMenu = NewBrickBossMenuModel(saved, w, h)
			m.screen = screenBrickBossMenu
			return m, m.bbMenu.Init()
		}
		return m.startGame(game, nil)

	case EntryRanking:
		m.ranking = NewRankingModel(m.svc.Store, m.account.Namespace, w, h)
		m.screen = screenRanking
		return m, m.ranking.Init()

	case EntryOptions:
		m.options = NewOptionsModel(m.svc.Store, m.account, w, h)
		m.screen = screenOptions
		return m, m.options.Init()

	case EntryLogin, EntryRegister, EntryRecover:
		mode := AuthLogin
		switch selected.Entry {
		case EntryRegister:
			mode = AuthRegister
		case EntryRecover:
			mode = AuthRecover
		}
		m.login = NewLoginModel(m.svc.Accounts, mode, w, h)
		m.screen = screenLogin
		return m, m.login.Init()

	case EntryLogout:
		m.svc.log().Info("logged out", "account", m.account.Namespace)
		m.account = account.Guest
		return m.toMenu("Logged out.")
	}
	return m, cmd
}

// startGame runs game, continuing from resume when set.
func (m SessionModel) startGame(game registry.Game, resume *brickboss.SavedGame) (tea.Model, tea.Cmd) {
	gm := NewGameModel(game, m.svc, m.account, m.config, resume)
	m.game = &gm
	m.pending = nil
	m.gen++
	m.screen = screenGame
	m.svc.log().Info("game started", "game", game.ID(), "account", m.account.Namespace, "continue", resume != nil)
	return m, m.stamp(gm.Init())
}

// stamp tags the ticks scheduled by cmd with the current game.
func (m SessionModel) stamp(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	gen := m.gen
	return func() tea.Msg {
		msg := cmd()
		if t, ok := msg.(TickMsg); ok {
			return gameTick{gen: gen, tick: t}
		}
		return msg
	}
}

func (m SessionModel) updateBrickBossMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.bbMenu.Update(msg)
	m.bbMenu = next.(BrickBossMenuModel)

	switch {
	case m.bbMenu.IsQuitting():
		return m.quit()
	case m.bbMenu.WantsBack():
		m.pending = nil
		return m.toMenu("")
	}

	switch m.bbMenu.Choice() {
	case BrickBossNewGame:
		return m.startGame(m.pending, nil)
	case BrickBossContinue:
		return m.startGame(m.pending, m.bbMenu.Saved())
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	gm := next.(GameModel)
	m.game = &gm

	if m.game.IsQuitting() {
		return m.quit()
	}
	if m.game.BackToMenu() {
		m.game = nil
		m.svc.Audio.Music(-1)
		return m.toMenu("")
	}
	return m, m.stamp(cmd)
}

func (m SessionModel) updateRanking(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.ranking.Update(msg)
	m.ranking = next.(RankingModel)

	switch {
	case m.ranking.IsQuitting():
		return m.quit()
	case m.ranking.IsGoingBack():
		return m.toMenu("")
	}
	return m, cmd
}

func (m SessionModel) updateOptions(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.options.Update(msg)
	m.options = next.(OptionsModel)

	switch {
	case m.options.IsQuitting():
		return m.quit()
	case m.options.WantsBack():
		if m.options.Saved() {
			m.svc.log().Info("options saved", "account", m.account.Namespace, "difficulty", m.options.Options().Difficulty)
			m.svc.upload(m.account)
		}
		return m.toMenu("")
	}
	return m, cmd
}

func (m SessionModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.login.Update(msg)
	m.login = next.(LoginModel)

	switch {
	case m.login.IsQuitting():
		return m.quit()
	case m.login.WantsBack():
		return m.toMenu("")
	}

	acc := m.login.Result()
	if acc == nil {
		return m, cmd
	}
	m.account = *acc
	m.svc.log().Info("logged in", "account", acc.Namespace)
	m, menuCmd := m.toMenu("Welcome, " + acc.Name + "!")
	return m, tea.Batch(menuCmd, downloadCmd(m.svc.Mirror, acc.Namespace))
}

// handleSynced reports a finished cloud pull on the menu.
func (m SessionModel) handleSynced(msg syncedMsg) SessionModel {
	if msg.namespace != m.account.Namespace {
		return m
	}
	if msg.err != nil {
		m.svc.log().Warn("cloud sync failed", "account", msg.namespace, "err", msg.err)
		return m
	}
	if msg.applied && m.screen == screenMenu {
		m.menu = m.menu.WithNotice("Progress synced from the cloud.")
	}
	return m
}

// downloadCmd pulls an account's cloud section in the background.
func downloadCmd(mirror *cloudsync.Mirror, namespace string) tea.Cmd {
	if mirror == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
		defer cancel()
		applied, err := mirror.Download(ctx, namespace)
		return syncedMsg{namespace: namespace, applied: applied, err: err}
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	case screenBrickBossMenu:
		return m.bbMenu.View()
	case screenRanking:
		return m.ranking.View()
	case screenOptions:
		return m.options.View()
	case screenLogin:
		return m.login.View()
	}
	return m.menu.View()
}

// RunSession runs the menu-driven session locally until the player quits.
func RunSession(svc Services, cfg core.RuntimeConfig, acc account.Account) error {
	p := tea.NewProgram(
		NewSessionModel(svc, cfg, acc, false),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}
