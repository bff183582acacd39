// Package escape adapts the Shadow Escape simulation to the platform's
// fixed-tick game loop: it maps input actions onto session commands, tracks
// runs and draws the track into a character screen.
package escape

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/shadow-escape/internal/config"
	"github.com/vovakirdan/shadow-escape/internal/core"
	"github.com/vovakirdan/shadow-escape/internal/games/escape/sim"
)

// Driver is the command surface of a session. *sim.Session implements it,
// and so does a replay recorder wrapping one.
type Driver interface {
	Start() bool
	Reset()
	SetLaneIntent(d sim.Direction) bool
	Tick(dt float64) sim.Snapshot
	Snapshot() sim.Snapshot
}

// RunSummary describes a finished chase.
type RunSummary struct {
	RunID    string
	Score    int
	Duration time.Duration
	Seed     int64
	Ticks    uint64
}

// Options configures a Game.
type Options struct {
	Config config.EscapeConfig
	Preset config.DifficultyPreset
	Store  sim.HighScoreStore
	Logger *log.Logger

	// Wrap, when set, decorates every new session, e.g. to record it.
	Wrap func(s *sim.Session, seed int64) (Driver, error)

	// OnRunEnd is called once for every chase that ends in a crash.
	OnRunEnd func(RunSummary)
}

// DefaultOptions returns options with the default config and no storage.
func DefaultOptions() Options {
	return Options{Config: config.DefaultEscapeConfig()}
}

// Game implements the Shadow Escape platform game.
type Game struct {
	opts    Options
	logger  *log.Logger
	runtime core.RuntimeConfig

	drv    Driver
	simCfg sim.Config
	snap   sim.Snapshot
	paused bool

	seed     int64
	runID    string
	runStart uint64 // session tick the current run's countdown began at
}

// New creates a new Shadow Escape game instance. Call Reset before Step.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{opts: opts, logger: logger}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "escape"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Shadow Escape"
}

// Reset builds a fresh session seeded from runtime.Seed.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.closeDriver()

	cfg := g.opts.Config
	if g.opts.Preset != "" {
		config.ApplyEscapePreset(&cfg, g.opts.Preset)
	}

	g.simCfg = cfg.Sim()
	sess, err := sim.NewSession(g.simCfg, sim.NewSource(runtime.Seed), g.opts.Store, sim.WithLogger(g.logger))
	if err != nil {
		g.logger.Warn("invalid escape config, using defaults", "error", err)
		g.simCfg = sim.DefaultConfig()
		sess, err = sim.NewSession(g.simCfg, sim.NewSource(runtime.Seed), g.opts.Store, sim.WithLogger(g.logger))
		if err != nil {
			panic(fmt.Sprintf("escape: default config rejected: %v", err))
		}
	}

	g.drv = sess
	if g.opts.Wrap != nil {
		if d, err := g.opts.Wrap(sess, runtime.Seed); err != nil {
			g.logger.Warn("session wrapper failed, continuing without it", "error", err)
		} else {
			g.drv = d
		}
	}

	g.seed = runtime.Seed
	g.paused = false
	g.runID = ""
	g.snap = g.drv.Snapshot()
}

// Step applies this frame's actions, then advances the session by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && g.running() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Actions {
		switch a {
		case core.ActionLeft:
			g.drv.SetLaneIntent(sim.DirectionLeft)
		case core.ActionRight:
			g.drv.SetLaneIntent(sim.DirectionRight)
		case core.ActionStart:
			if g.snap.Phase == sim.PhaseLost {
				g.drv.Reset()
			}
			g.start()
		case core.ActionRestart:
			g.drv.Reset()
			g.snap = g.drv.Snapshot()
		}
	}

	prev := g.snap.Phase
	g.snap = g.drv.Tick(g.runtime.DeltaTime())
	if g.snap.Phase == sim.PhaseLost && prev != sim.PhaseLost {
		g.finishRun()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) start() {
	if !g.drv.Start() {
		return
	}
	g.snap = g.drv.Snapshot()
	g.runID = uuid.NewString()
	g.runStart = g.snap.Tick
}

func (g *Game) finishRun() {
	run := RunSummary{
		RunID:    g.runID,
		Score:    g.snap.Score.Current,
		Duration: time.Duration(g.snap.Elapsed * float64(time.Second)),
		Seed:     g.seed,
		Ticks:    g.snap.Tick - g.runStart,
	}
	g.logger.Info("run over", "run", run.RunID, "score", run.Score, "duration", run.Duration.Round(time.Millisecond))
	if g.opts.OnRunEnd != nil {
		g.opts.OnRunEnd(run)
	}
}

// running reports whether a countdown or chase is in progress.
func (g *Game) running() bool {
	return g.snap.Phase == sim.PhaseCountdown || g.snap.Phase == sim.PhaseChasing
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.snap.Score.Current,
		GameOver: g.snap.Phase == sim.PhaseLost,
		Paused:   g.paused,
	}
}

// Snapshot returns the last snapshot the session produced.
func (g *Game) Snapshot() sim.Snapshot {
	return g.snap
}

// SimConfig returns the tuning the current session runs with.
func (g *Game) SimConfig() sim.Config {
	return g.simCfg
}

// Paused reports whether the game is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// RunID returns the ID of the current or last run, empty before the first start.
func (g *Game) RunID() string {
	return g.runID
}

// Close releases the session driver, flushing any recording.
func (g *Game) Close() error {
	return g.closeDriver()
}

func (g *Game) closeDriver() error {
	c, ok := g.drv.(io.Closer)
	g.drv = nil
	if !ok {
		return nil
	}
	return c.Close()
}
