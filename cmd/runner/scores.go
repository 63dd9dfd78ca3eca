package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresTUI    bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best runs recorded in the scores database.

Examples:
  runner scores
  runner scores --recent --limit 20
  runner scores --tui
  runner scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the high score and run history")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		return clearScores(store)
	case flagScoresTUI:
		width, height := terminalSize()
		return tui.RunScoreboard(store, width, height)
	}

	var runs []storage.RunRecord
	if flagScoresRecent {
		runs, err = store.RecentRuns(storage.DefaultGameID, flagScoresLimit)
	} else {
		runs, err = store.TopRuns(storage.DefaultGameID, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	if flagScoresRecent {
		fmt.Println("Recent Runs")
	} else {
		fmt.Println("High Scores")
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-9s  %-6s  %-10s  %s\n", "Rank", "Score", "Distance", "Coins", "Seed", "Date")
	fmt.Printf("  %-4s  %-8s  %-9s  %-6s  %-10s  %s\n", "----", "-----", "--------", "-----", "----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-9.0f  %-6d  %-10d  %s\n",
			i+1, r.Score, r.Distance, r.Coins, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	stats, err := store.Stats(storage.DefaultGameID)
	if err == nil {
		fmt.Printf("Best: %d   Runs: %d   Avg: %.0f   Total distance: %.0fm\n",
			stats.BestScore, stats.Runs, stats.AvgScore, stats.TotalDistance)
	}
	return nil
}

func clearScores(store *storage.Store) error {
	if err := store.ClearHighScore(storage.DefaultGameID); err != nil {
		return err
	}
	if err := store.ClearRuns(storage.DefaultGameID); err != nil {
		return err
	}
	fmt.Println("Scores cleared.")
	return nil
}
