package core

// Default playfield dimensions in world units.
const (
	DefaultCanvasW = 800
	DefaultCanvasH = 600
)

// CanvasPreset names a playfield size.
type CanvasPreset string

const (
	CanvasDesktop   CanvasPreset = "desktop"
	CanvasMobile    CanvasPreset = "mobile"
	CanvasLandscape CanvasPreset = "landscape"
)

// CanvasSize returns the world dimensions for a preset.
// Unknown presets fall back to the desktop size.
func CanvasSize(p CanvasPreset) (w, h float64) {
	switch p {
	case CanvasMobile:
		return 480, 720
	case CanvasLandscape:
		return 960, 540
	default:
		return DefaultCanvasW, DefaultCanvasH
	}
}

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int     // Screen width in characters
	ScreenH  int     // Screen height in characters
	CanvasW  float64 // Playfield width in world units
	CanvasH  float64 // Playfield height in world units
	TickRate int     // Simulation ticks per second (default 60)
	Seed     int64   // RNG seed, 0 means use current time in platform layer
	Account  string  // Sanitized account name, "guest" when not logged in
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		CanvasW:  DefaultCanvasW,
		CanvasH:  DefaultCanvasH,
		TickRate: 60,
		Seed:     0,
		Account:  "guest",
	}
}

// Canvas returns the playfield size, defaulting zero values.
func (c RuntimeConfig) Canvas() (w, h float64) {
	w, h = c.CanvasW, c.CanvasH
	if w <= 0 || h <= 0 {
		return DefaultCanvasW, DefaultCanvasH
	}
	return w, h
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Stage    int  // Current stage, 1-based (0 when the game has no stages)
	GameOver bool // Whether the game has ended (lost or won)
	Won      bool // Whether the game ended in a win
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
