// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input sampling, the menus around the
// games and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brick-arcade/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd schedules the next tick at the given rate, or at the target
// frame rate when tickRate is not positive.
func tickCmd(tickRate int) tea.Cmd {
	interval := core.TargetFrame
	if tickRate > 0 {
		interval = time.Second / time.Duration(tickRate)
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
