package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brick-arcade/internal/cloudsync"
)

var flagSyncAddr string

var syncServerCmd = &cobra.Command{
	Use:   "sync-server",
	Short: "Host the shared cloud document",
	Long: `Serve the cloud document arcades sync rankings, saved games and
options with. The document is kept in this server's database; the last
push of an account's section wins.

Examples:
  arcade sync-server
  arcade sync-server --addr :9000 --db ./cloud.db

Clients point at it with:
  arcade menu --sync-url ws://localhost:8765/sync`,
	Args: cobra.NoArgs,
	RunE: runSyncServer,
}

func init() {
	syncServerCmd.Flags().StringVar(&flagSyncAddr, "addr", ":8765", "HTTP listen address")
}

func runSyncServer(_ *cobra.Command, _ []string) error {
	e, err := newEnv(envOptions{Prefix: "arcade-sync", RequireStore: true, LogTo: os.Stderr})
	if err != nil {
		return err
	}
	defer e.Close()

	server, err := cloudsync.NewServer(e.svc.Store, e.logger)
	if err != nil {
		return err
	}

	fmt.Printf("Starting sync server on %s (path /sync)\n", flagSyncAddr)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx, flagSyncAddr)
}
