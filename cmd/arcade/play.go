package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brick-arcade/internal/games/brickboss"
	"github.com/vovakirdan/brick-arcade/internal/games/soultrial"
	"github.com/vovakirdan/brick-arcade/internal/platform/tui"
	"github.com/vovakirdan/brick-arcade/internal/registry"
)

var (
	flagContinue bool
	flagUser     string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Brick Boss controls:
  Left/Right, A/D   - Move paddle (or move the mouse)
  Space/Up, click   - Launch ball, shoot when armed
  P/O               - Pause / options
  S                 - Save from the pause screen
  B/Esc             - Leave (when paused or over)
  Q/Ctrl+C          - Quit

Soul Trial controls:
  Arrows/WASD       - Walk, move the soul in battle
  Z/Enter           - Talk and advance dialogue
  P                 - Pause

Difficulty options:
  easy   - More lives, wider paddle, slower ball
  normal - Default tuning
  hard   - Fewer lives, narrow paddle, faster ball

Examples:
  arcade play brickboss
  arcade play brickboss --difficulty hard
  arcade play brickboss --continue --user alice
  arcade play soultrial --canvas landscape
  arcade play brickboss --config ./my-brickboss.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "Continue the saved Brick Boss game")
	playCmd.Flags().StringVar(&flagUser, "user", "", "Play as this account (asks for the password)")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	// Set config path for the game before creation
	switch gameID {
	case "brickboss":
		brickboss.SetConfigPath(flagConfig)
	case "soultrial":
		soultrial.SetConfigPath(flagConfig)
	}

	e, err := newEnv(envOptions{Prefix: "arcade", Audio: true})
	if err != nil {
		return err
	}
	defer e.Close()

	acc := loginAs(e, flagUser)
	if !acc.IsGuest() && e.svc.Mirror != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if _, err := e.svc.Mirror.Download(ctx, acc.Namespace); err != nil {
			e.logger.Warn("cloud sync failed", "account", acc.Namespace, "err", err)
		}
		cancel()
	}

	var resume *brickboss.SavedGame
	if flagContinue {
		if gameID != "brickboss" {
			return errors.New("--continue only applies to brickboss")
		}
		if e.svc.Store == nil {
			return errors.New("--continue needs the database")
		}
		var saved brickboss.SavedGame
		found, err := e.svc.Store.LoadGame(acc.Namespace, &saved)
		if err != nil {
			return err
		}
		if !found {
			fmt.Fprintf(os.Stderr, "No saved game for %s, starting a new one.\n", acc.Name)
		} else {
			resume = &saved
		}
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if err := tui.Run(game, e.svc, acc, runtimeConfig(), resume); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
