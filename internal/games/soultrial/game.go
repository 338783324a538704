// Package soultrial implements Soul Trial, a small overworld demo: walk a
// room, talk to its residents and survive their bullet patterns to spare them.
package soultrial

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/core"
	"github.com/vovakirdan/brick-arcade/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// State is the top-level game state.
type State string

const (
	StateTitle     State = "title"
	StateOverworld State = "overworld"
	StateDialog    State = "dialog"
	StateBattle    State = "battle"
	StateGameOver  State = "gameover"
	StateWin       State = "win"
)

// walkLead is how far ahead of the player's center walls are probed, in tiles.
const walkLead = 0.45

// Game implements the Soul Trial game logic.
type Game struct {
	cfg        config.SoulTrialConfig
	rng        *rand.Rand
	difficulty *config.DifficultyManager

	state  State
	paused bool
	room   *Room
	px, py float64 // Player position in tiles; tile centers are integers
	facing Dir
	hp     int

	talking *NPC
	line    int
	battle  *Battle

	survived float64 // Battle ticks survived over the whole run
	spared   int

	prevConfirm bool
	events      core.Events

	preset config.DifficultyPreset

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new Soul Trial game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "soultrial"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Soul Trial"
}

// SetDifficulty selects the preset for this instance. It takes effect on
// the next Reset.
func (g *Game) SetDifficulty(preset string) {
	g.preset = config.ParsePreset(preset)
}

// Resize updates the terminal size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
}

// Reset initializes the game and shows the title screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadSoulTrial(configPath)
	if err != nil {
		cfg = config.DefaultSoulTrialConfig()
	}
	if g.preset != "" {
		config.ApplySoulTrialPreset(&cfg, g.preset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))

	g.minScreenW = 30
	g.minScreenH = 15
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	g.prevConfirm = false
	g.newGame()
	g.state = StateTitle
}

// newGame rebuilds the room and restores the player.
func (g *Game) newGame() {
	g.room = DefaultRoom()
	g.px, g.py = float64(g.room.StartX), float64(g.room.StartY)
	g.facing = DirDown
	g.hp = g.cfg.Player.MaxHP
	g.talking = nil
	g.line = 0
	g.battle = nil
	g.survived = 0
	g.spared = 0
	g.paused = false
	g.state = StateOverworld
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame, elapsed time.Duration) core.StepResult {
	g.events = nil
	if g.screenTooSmall {
		return g.result()
	}

	held := in.Has(core.ActionConfirm) || in.Has(core.ActionLaunch)
	confirm := held && !g.prevConfirm
	g.prevConfirm = held

	switch g.state {
	case StateTitle:
		if confirm || in.Pointer.Tapped {
			g.newGame()
		}

	case StateGameOver, StateWin:
		if confirm || in.Has(core.ActionRestart) {
			g.newGame()
		}

	case StateDialog:
		if confirm {
			g.advance()
		}

	case StateOverworld, StateBattle:
		if in.Has(core.ActionPause) || in.Has(core.ActionOptions) {
			g.paused = !g.paused
			break
		}
		if g.paused {
			break
		}
		dt := core.FrameMultiplier(elapsed)
		if dt <= 0 {
			break
		}
		if g.state == StateOverworld {
			g.walk(in, dt)
			if confirm {
				g.interact()
			}
		} else {
			g.fight(in, dt)
		}
	}

	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// walk moves the player one axis at a time, stopping at walls and NPCs.
func (g *Game) walk(in core.InputFrame, dt float64) {
	ax, ay := in.HorizontalAxis(), in.VerticalAxis()
	switch {
	case ax < 0:
		g.facing = DirLeft
	case ax > 0:
		g.facing = DirRight
	case ay < 0:
		g.facing = DirUp
	case ay > 0:
		g.facing = DirDown
	}

	step := g.cfg.Player.WalkSpeed * dt
	if ax != 0 {
		nx := g.px + ax*step
		if !g.room.Blocked(cellOf(nx+ax*walkLead), cellOf(g.py)) {
			g.px = nx
		}
	}
	if ay != 0 {
		ny := g.py + ay*step
		if !g.room.Blocked(cellOf(g.px), cellOf(ny+ay*walkLead)) {
			g.py = ny
		}
	}
}

// PlayerCell returns the tile the player stands on.
func (g *Game) PlayerCell() (int, int) {
	return cellOf(g.px), cellOf(g.py)
}

// interact opens the dialogue of the NPC the player faces.
func (g *Game) interact() {
	x, y := g.PlayerCell()
	npc := g.room.NPCAt(x+g.facing.DX, y+g.facing.DY)
	if npc == nil {
		return
	}
	g.talking = npc
	g.line = 0
	g.state = StateDialog
	g.events.Add(core.EventDialog, 0)
}

// advance shows the next dialogue line; after the last one a hostile NPC
// attacks and anyone else lets the player go.
func (g *Game) advance() {
	g.line++
	if g.line < len(g.talking.dialogue()) {
		g.events.Add(core.EventDialog, g.line)
		return
	}
	npc := g.talking
	g.talking = nil
	g.line = 0
	if npc.Hostile && !npc.Spared {
		g.battle = newBattle(npc, g.cfg.Battle)
		g.state = StateBattle
		g.events.Add(core.EventBattleStart, int(npc.Pattern))
		return
	}
	g.state = StateOverworld
}

// fight runs one battle frame.
func (g *Game) fight(in core.InputFrame, dt float64) {
	b := g.battle
	b.moveSoul(in.HorizontalAxis(), in.VerticalAxis(), g.cfg.Player.SoulSpeed, dt)

	speed := g.difficulty.Speed(g.cfg.Battle.BulletSpeed, g.Score(), int(g.survived))
	hit := b.update(g.cfg.Battle, speed, dt, g.rng)
	g.survived += dt

	if hit {
		g.hp = max(0, g.hp-g.cfg.Battle.Damage)
		g.events.Add(core.EventLifeLost, g.hp)
		if g.hp == 0 {
			g.battle = nil
			g.state = StateGameOver
			g.events.Add(core.EventGameOver, g.Score())
			return
		}
	}

	if !b.Done() {
		return
	}
	b.Enemy.Spared = true
	g.spared++
	g.battle = nil
	g.events.Add(core.EventBattleWon, g.spared)

	if total, spared := g.room.Hostiles(); spared == total {
		g.state = StateWin
		g.events.Add(core.EventWin, g.Score())
		return
	}
	g.state = StateOverworld
}

// Score returns survived frames per divisor plus the bonus for spared enemies.
func (g *Game) Score() int {
	div := max(g.cfg.Battle.SurvivalDivisor, 1)
	return int(math.Floor(g.survived))/div + g.cfg.Battle.SparedBonus*g.spared
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score(),
		Stage:    g.spared,
		GameOver: g.state == StateGameOver || g.state == StateWin,
		Won:      g.state == StateWin,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("soultrial", func() registry.Game {
		return New()
	})
}
