// escape is Shadow Escape, an endless runner for the terminal: outrun the
// shadow down a three-lane track and dodge the obstacles in your way.
//
// Usage:
//
//	escape                   - Title menu (play, scores)
//	escape play              - Start a run directly
//	escape scores            - Show the best runs
//	escape serve             - Start SSH server for remote play
//	escape web               - Serve browser clients over websockets
//	escape replay <file>     - Verify a recorded session
//	escape config print      - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.escape/escape.db)
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/shadow-escape/internal/config"
	"github.com/vovakirdan/shadow-escape/internal/core"
	"github.com/vovakirdan/shadow-escape/internal/games/escape"
	"github.com/vovakirdan/shadow-escape/internal/platform/tui"
	"github.com/vovakirdan/shadow-escape/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "escape",
	Short: "Shadow Escape - outrun the shadow in your terminal",
	Long: `Shadow Escape is an endless runner: after a short countdown the shadow
gives chase, and you steer between three lanes to dodge obstacles for as
long as you can. Your score is the distance you cover.

Run without a subcommand to open the title menu.

Examples:
  escape
  escape play --difficulty hard
  escape scores -i
  escape serve --ssh :2222
  escape web --http :8080`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds a structured logger honouring --log-level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// tuiLogger logs to ~/.escape/escape.log so nothing scribbles over the
// alternate screen. The returned func closes the file.
func tuiLogger() (*log.Logger, func()) {
	dir := config.UserConfigDir()
	if dir == "" {
		return log.New(io.Discard), func() {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "escape.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLogger(f, "escape"), func() { f.Close() }
}

// gameOptions loads the config and difficulty shared by every front end.
func gameOptions(logger *log.Logger) (escape.Options, error) {
	cfg, source, err := config.LoadEscapeFrom(flagConfig)
	if err != nil {
		return escape.Options{}, err
	}
	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		return escape.Options{}, err
	}
	logger.Debug("config loaded", "source", source, "difficulty", preset)

	return escape.Options{
		Config: cfg,
		Preset: preset,
		Logger: logger,
	}, nil
}

// localStorage is the store and high-score keeper of a local session.
type localStorage struct {
	store  *storage.Store
	keeper *storage.HighScoreKeeper
}

// openLocalStorage opens the database. A failure is reported and play
// continues without persistence.
func openLocalStorage(logger *log.Logger) localStorage {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return localStorage{}
	}
	return localStorage{store: store, keeper: storage.NewHighScoreKeeper(store, logger)}
}

// wire attaches storage to game options.
func (l localStorage) wire(opts *escape.Options) {
	if l.store == nil {
		return
	}
	opts.Store = l.keeper
	opts.OnRunEnd = escape.SaveRuns(l.store, opts.Logger)
}

func (l localStorage) Close() {
	if l.keeper != nil {
		if err := l.keeper.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: high score not saved: %v\n", err)
		}
	}
	if l.store != nil {
		l.store.Close()
	}
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog := tuiLogger()
	defer closeLog()

	opts, err := gameOptions(logger)
	if err != nil {
		return err
	}

	local := openLocalStorage(logger)
	defer local.Close()
	local.wire(&opts)

	deps := tui.SessionDeps{
		NewGame: func() tui.Game { return escape.New(opts) },
		Logger:  logger,
	}
	if local.store != nil {
		deps.Runs = local.store
		deps.HighScore = func() int {
			high, err := local.keeper.ReadHighScore()
			if err != nil {
				return 0
			}
			return high
		}
	}

	return tui.RunSession(deps, runtimeConfig())
}
