package brickboss

import "time"

// State is the top-level game state.
type State string

const (
	StateStart      State = "start"       // Title, waiting for confirm
	StatePlaying    State = "playing"     // Stage in progress (serve is the unlaunched sub-state)
	StatePaused     State = "paused"      // Options panel open
	StateStageClear State = "stage_clear" // Overlay before the next stage
	StateGameOver   State = "gameover"    // No lives left
	StateWin        State = "win"         // Final stage cleared
)

// Session holds the scalar progress of one game.
type Session struct {
	State      State
	Score      int
	Lives      int
	Stage      int // 1-based
	Launched   bool
	ServeDelay float64 // Ticks until a serve is allowed
	BallSpeed  float64 // Base ball speed for the current stage

	Overlay     string
	OverlayLeft time.Duration // Real time remaining for Overlay
	Recorded    bool          // Score already handed to the recorder
}

// overlayActive reports whether a transient overlay suspends the simulation.
func (s *Session) overlayActive() bool {
	return s.OverlayLeft > 0
}

// showOverlay displays text for d of real time.
func (s *Session) showOverlay(text string, d time.Duration) {
	s.Overlay = text
	s.OverlayLeft = d
}

// tickOverlay consumes real time and reports whether the overlay just ended.
func (s *Session) tickOverlay(elapsed time.Duration) bool {
	if s.OverlayLeft <= 0 {
		return false
	}
	s.OverlayLeft -= elapsed
	if s.OverlayLeft <= 0 {
		s.OverlayLeft = 0
		s.Overlay = ""
		return true
	}
	return false
}

// Over reports whether the game has ended.
func (s *Session) Over() bool {
	return s.State == StateGameOver || s.State == StateWin
}
