// arcade is a terminal arcade with Brick Boss, a brick breaker with items
// and bosses, and Soul Trial, a dialogue and bullet-dodge demo.
//
// Usage:
//
//	arcade list                  - List available games
//	arcade play <game>           - Play a game
//	arcade menu                  - Start menu with accounts and ranking
//	arcade serve                 - Start SSH server for remote play
//	arcade scores                - Show the Brick Boss ranking
//	arcade account <action>      - Register, log in or recover a password
//	arcade sync-server           - Host the shared cloud document
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/arcade.db)
//	--canvas <preset>    - Playfield size: desktop, mobile, landscape
//	--difficulty <name>  - Difficulty preset: easy, normal, hard
//	--sync-url <url>     - Cloud sync server, e.g. ws://host:8765/sync
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/brick-arcade/internal/games/brickboss"
	_ "github.com/vovakirdan/brick-arcade/internal/games/soultrial"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagCanvas     string
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagLogLevel   string
	flagLogFile    string
	flagSyncURL    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Brick Arcade - brick breaking and bullet dodging in your terminal",
	Long: `Brick Arcade is a terminal game platform with two games:

  brickboss  - Brick breaker with items, nerfs and a boss on every stage
  soultrial  - Walk, talk and survive bullet patterns

Available commands:
  list         - Show all available games
  play         - Play a specific game directly
  menu         - Interactive menu with accounts, options and ranking
  serve        - Start SSH server for remote play
  scores       - View the Brick Boss ranking
  account      - Manage accounts from the command line
  sync-server  - Host the cloud document other arcades sync with

Examples:
  arcade list
  arcade play brickboss
  arcade play brickboss --continue --user alice
  arcade menu --canvas landscape
  arcade serve --ssh :2222
  arcade scores --account alice`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/arcade.db", "Path to the arcade database")
	pf.StringVar(&flagCanvas, "canvas", "desktop", "Playfield preset: desktop, mobile, landscape")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard (overrides account options)")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagSyncURL, "sync-url", "", "Cloud sync server URL (ws://host:port/sync)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(syncServerCmd)
}
