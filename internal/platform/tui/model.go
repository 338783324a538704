package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brick-arcade/internal/account"
	"github.com/vovakirdan/brick-arcade/internal/core"
	"github.com/vovakirdan/brick-arcade/internal/games/brickboss"
	"github.com/vovakirdan/brick-arcade/internal/registry"
)

// resizer is implemented by games that can follow a terminal resize
// without restarting.
type resizer interface {
	Resize(w, h int)
}

// difficultySetter is implemented by games with per-instance presets.
type difficultySetter interface {
	SetDifficulty(preset string)
}

// GameModel runs one game: it samples input, steps the simulation on every
// tick and hands the step's events to audio and persistence.
type GameModel struct {
	game    registry.Game
	screen  *core.Screen
	config  core.RuntimeConfig
	svc     Services
	account account.Account

	clock *core.FrameClock
	input *InputSampler
	state core.GameState

	quitting   bool
	backToMenu bool
}

// NewGameModel prepares game for acc. When resume is set and the game is
// Brick Boss, the run continues from the snapshot.
func NewGameModel(game registry.Game, svc Services, acc account.Account, cfg core.RuntimeConfig, resume *brickboss.SavedGame) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.Account = acc.Namespace
	svc = svc.forAccount(acc)

	if d, ok := game.(difficultySetter); ok {
		d.SetDifficulty(svc.difficulty(acc))
	}
	bb, isBrickBoss := game.(*brickboss.Game)
	if isBrickBoss {
		bb.SetRecorder(&storeRecorder{svc: svc, account: acc})
		bb.SetAngleClamp(svc.options(acc).AngleClamp)
	}

	game.Reset(cfg)

	if isBrickBoss && resume != nil {
		if err := bb.Continue(*resume); err != nil {
			svc.log().Warn("cannot continue saved game", "account", acc.Namespace, "err", err)
		} else if svc.Store != nil {
			// A snapshot is resumed once; saving again writes a new one.
			if err := svc.Store.ClearGame(acc.Namespace); err != nil {
				svc.log().Warn("cannot clear saved game", "account", acc.Namespace, "err", err)
			}
		}
	}

	return GameModel{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:  cfg,
		svc:     svc,
		account: acc,
		clock:   &core.FrameClock{},
		input:   NewInputSampler(),
		state:   game.State(),
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.input.Key(msg, time.Now()) {
		m.quitting = true
		return m, tea.Quit
	}

	// B or Esc leaves the game once it is over or paused.
	switch msg.String() {
	case "b", "esc":
		if m.state.GameOver || m.state.Paused {
			m.backToMenu = true
			m.input.Release()
		}
	}
	return m, nil
}

func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := playfieldPointer(msg.X, msg.Y, m.config.ScreenW, m.config.ScreenH)
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.input.Mouse(x, y, true)
	case msg.Action == tea.MouseActionMotion:
		m.input.Mouse(x, y, false)
	}
	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.state.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick steps the simulation once. Paused games still receive input
// so they can unpause, but the clock is stopped.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	elapsed := m.clock.Tick(now)
	res := m.game.Step(m.input.Frame(now), elapsed)
	prev := m.state
	m.state = res.State

	switch {
	case res.State.Paused && !m.clock.Paused():
		m.clock.Pause()
	case !res.State.Paused && m.clock.Paused():
		m.clock.Resume()
	}

	m.svc.Audio.HandleStep(res)
	for _, ev := range res.Events {
		m.svc.log().Debug("game event", "game", m.game.ID(), "event", ev.Kind, "value", ev.Value)
	}
	if res.State.GameOver && !prev.GameOver {
		m.svc.log().Info("run ended",
			"game", m.game.ID(),
			"account", m.account.Namespace,
			"score", res.State.Score,
			"won", res.State.Won,
		)
	}

	return m, tickCmd(m.config.TickRate)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last stepped game state.
func (m GameModel) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game until the player quits or leaves it.
func Run(game registry.Game, svc Services, acc account.Account, cfg core.RuntimeConfig, resume *brickboss.SavedGame) error {
	model := NewGameModel(game, svc, acc, cfg, resume)

	p := tea.NewProgram(
		runOnce{model},
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}

// runOnce ends the program when the game asks to go back to a menu.
type runOnce struct {
	GameModel
}

func (r runOnce) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := r.GameModel.Update(msg)
	r.GameModel = next.(GameModel)
	if r.BackToMenu() {
		return r, tea.Quit
	}
	return r, cmd
}
