package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brick-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select. The menu also holds
the ranking, per-account options and the account screens (log in, create
account, forgot password). After a game ends, B/Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --user alice --sync-url ws://arcade.example:8765/sync`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagUser, "user", "", "Start logged in as this account (asks for the password)")
}

func runMenu(_ *cobra.Command, _ []string) error {
	e, err := newEnv(envOptions{Prefix: "arcade", Audio: true})
	if err != nil {
		return err
	}
	defer e.Close()

	acc := loginAs(e, flagUser)
	if err := tui.RunSession(e.svc, runtimeConfig(), acc); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
