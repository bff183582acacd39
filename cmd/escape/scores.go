package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shadow-escape/internal/platform/tui"
	"github.com/vovakirdan/shadow-escape/internal/storage"
)

var (
	flagInteractive bool
	flagRecent      bool
	flagLimit       int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the top runs with their distance, chase time and seed.

A run's seed together with --seed reproduces its obstacle layout.

Examples:
  escape scores
  escape scores --recent -n 20
  escape scores -i`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "List the most recent runs instead of the best")
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagInteractive {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	var runs []storage.Run
	if flagRecent {
		runs, err = store.RecentRuns(flagLimit)
	} else {
		runs, err = store.TopRuns(flagLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	if flagRecent {
		fmt.Println("Recent Runs - Shadow Escape")
	} else {
		fmt.Println("High Scores - Shadow Escape")
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'escape play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-9s  %-7s  %-20s  %s\n", "Rank", "Distance", "Time", "Seed", "Date")
	fmt.Printf("  %-4s  %-9s  %-7s  %-20s  %s\n", "----", "--------", "----", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-9s  %-7s  %-20d  %s\n",
			i+1,
			fmt.Sprintf("%dm", r.Score),
			r.Duration.Round(100*time.Millisecond),
			r.Seed,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.GetStats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %dm  Runs: %d  Average: %.0fm  Total: %dm in %s\n",
			stats.HighScore, stats.Runs, stats.AvgScore, stats.TotalDistance, stats.TotalTime.Round(time.Second))
	}
	return nil
}
