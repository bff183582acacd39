package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shadow-escape/internal/games/escape"
	"github.com/vovakirdan/shadow-escape/internal/games/escape/sim"
	"github.com/vovakirdan/shadow-escape/internal/platform/tui"
	"github.com/vovakirdan/shadow-escape/internal/replay"
)

var flagRecord string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start Shadow Escape directly, skipping the menu.

Controls:
  Space/Enter  - Start (or retry after a crash)
  Left/A/H     - Move one lane left
  Right/D/L    - Move one lane right
  P            - Pause
  R            - Back to the title card
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower speed ramp, wider gaps
  normal - Default tuning
  hard   - Faster speed ramp, tighter gaps
  fixed  - No speed ramp at all

With --record, every session is written to the given directory as a
compressed replay that 'escape replay' can verify.

Examples:
  escape play
  escape play --difficulty hard
  escape play --seed 42 --record ./replays
  escape play --config ./my-escape.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Directory to write replay recordings to")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog := tuiLogger()
	defer closeLog()

	opts, err := gameOptions(logger)
	if err != nil {
		return err
	}

	local := openLocalStorage(logger)
	defer local.Close()
	local.wire(&opts)

	var recordings []string
	if flagRecord != "" {
		dir := flagRecord
		opts.Wrap = func(s *sim.Session, seed int64) (escape.Driver, error) {
			rec, path, err := replay.Create(dir, s, seed, logger)
			if err != nil {
				return nil, err
			}
			recordings = append(recordings, path)
			logger.Info("recording session", "path", path, "seed", seed)
			return rec, nil
		}
	}

	game := escape.New(opts)
	runErr := tui.Run(game, runtimeConfig())

	if err := game.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: recording incomplete: %v\n", err)
	}
	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}

	for _, path := range recordings {
		if rel, err := filepath.Rel(".", path); err == nil {
			path = rel
		}
		fmt.Printf("Recorded %s\n", path)
	}
	return nil
}
