package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shadow-escape/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>...",
	Short: "Verify recorded sessions",
	Long: `Re-run sessions recorded with 'escape play --record' and check that
every tick reproduces the recorded snapshot digest.

Examples:
  escape replay ./replays/3f2c9a1e-....jsonl.zst
  escape replay ./replays/*.jsonl.zst`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		rec, err := replay.ReadFile(path)
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", path, err)
			failed++
			continue
		}

		res, err := rec.Verify()
		switch {
		case errors.Is(err, replay.ErrDivergence):
			fmt.Printf("DIVERGED  %s: %v\n", path, err)
			failed++
		case err != nil:
			fmt.Printf("FAIL  %s: %v\n", path, err)
			failed++
		default:
			fmt.Printf("OK    %s: seed %d, %d ticks, %d runs, best %dm, final %s\n",
				path, rec.Header.Seed, res.Ticks, res.Runs, res.Best, res.Final.Phase)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d replays failed", failed, len(args))
	}
	return nil
}
