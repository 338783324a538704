package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brick-arcade/internal/storage"
)

var flagScoresAccount string

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the Brick Boss ranking",
	Long: `Display the Brick Boss ranking. Without --account, shows the best
result of every account; with it, shows that account's top 10.

Examples:
  arcade scores
  arcade scores --account alice
  arcade scores --account guest`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresAccount, "account", "", "Show the ranking of one account")
}

func runScores(_ *cobra.Command, _ []string) error {
	e, err := newEnv(envOptions{Prefix: "arcade", RequireStore: true, LogTo: os.Stderr})
	if err != nil {
		return err
	}
	defer e.Close()

	if flagScoresAccount != "" {
		return printRanking(e.svc.Store, storage.Namespace(flagScoresAccount))
	}

	rankings, err := e.svc.Store.AllRankings()
	if err != nil {
		return err
	}

	fmt.Println("Ranking - Brick Boss")
	fmt.Println()

	if len(rankings) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'arcade play brickboss' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-20s  %10s  %s\n", "Rank", "Account", "Best", "Runs")
	fmt.Printf("  %-4s  %-20s  %10s  %s\n", "----", "-------", "----", "----")

	for i, r := range rankings {
		fmt.Printf("  %-4d  %-20s  %10s  %d\n", i+1, r.Namespace, humanize.Comma(int64(r.Ranking.Best())), len(r.Ranking))
	}
	return nil
}

func printRanking(store *storage.Store, namespace string) error {
	ranking, err := store.Ranking(namespace)
	if err != nil {
		return err
	}

	fmt.Printf("Ranking - %s\n", namespace)
	fmt.Println()

	if len(ranking) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %10s  %s\n", "Rank", "Score", "When")
	fmt.Printf("  %-4s  %10s  %s\n", "----", "-----", "----")

	for i, entry := range ranking {
		fmt.Printf("  %-4d  %10s  %s (%s)\n", i+1,
			humanize.Comma(int64(entry.Score)),
			humanize.Time(entry.Timestamp),
			entry.Timestamp.Local().Format("2006-01-02 15:04"),
		)
	}
	return nil
}
