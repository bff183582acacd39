package sim

import (
	"errors"
	"io"
	"math"
	"sync"

	"github.com/charmbracelet/log"
)

// countdownEpsilon absorbs float drift when the countdown is decremented by
// many small ticks.
const countdownEpsilon = 1e-9

// Transition is a phase change observed by a TransitionHook.
type Transition struct {
	From Phase
	To   Phase
	Tick uint64
}

// TransitionHook is called after the session lock is released, in the order
// transitions happened.
type TransitionHook func(Transition)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for persistence warnings and debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTransitionHook registers a callback for phase changes.
func WithTransitionHook(h TransitionHook) Option {
	return func(s *Session) {
		if h != nil {
			s.hooks = append(s.hooks, h)
		}
	}
}

// Session is one game round: it owns both actors, the obstacle stream, the
// score tracker and the random source. All methods are safe for concurrent
// use; the only method that advances time is Tick.
type Session struct {
	mu sync.Mutex

	cfg    Config
	rng    Source
	logger *log.Logger
	hooks  []TransitionHook

	phase     Phase
	ticks     uint64
	countdown float64
	elapsed   float64
	speed     float64

	player  Actor
	pursuer Actor
	hopper  laneHopper
	stream  *Stream
	score   *ScoreTracker

	pendingLane Lane
	lanePending bool

	fired []Transition
}

// NewSession validates cfg and returns an idle session. store may be nil.
func NewSession(cfg Config, rng Source, store HighScoreStore, opts ...Option) (*Session, error) {
	if rng == nil {
		return nil, errors.New("sim: nil random source")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:    cfg,
		rng:    rng,
		logger: log.New(io.Discard),
		hopper: laneHopper{interval: cfg.PursuerLaneInterval},
		stream: NewStream(cfg.Obstacles),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.score = NewScoreTracker(store, s.logger)
	s.rewind()
	return s, nil
}

// Config returns the configuration the session was built with.
func (s *Session) Config() Config {
	return s.cfg
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Start begins the countdown. It reports false, and does nothing, unless the
// session is idle.
func (s *Session) Start() bool {
	s.mu.Lock()
	if s.phase != PhaseIdle {
		s.mu.Unlock()
		return false
	}
	s.rewind()
	s.transition(PhaseCountdown)
	s.unlockAndNotify()
	return true
}

// Reset returns to idle from any phase. The high score is reconciled before
// the current score is cleared; motion stops immediately and the obstacle
// window is emptied.
func (s *Session) Reset() {
	s.mu.Lock()
	s.score.Reconcile()
	s.rewind()
	if s.phase != PhaseIdle {
		s.transition(PhaseIdle)
	}
	s.unlockAndNotify()
}

// SetLaneIntent queues a one-lane move for the player, applied at the start
// of the next Tick. Intents outside the chase are ignored and report false.
// Repeated intents before a tick accumulate on the target lane.
func (s *Session) SetLaneIntent(d Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseChasing {
		return false
	}
	base := s.player.Lane
	if s.lanePending {
		base = s.pendingLane
	}
	s.pendingLane = base.Shift(s.cfg.Controls.Delta(d))
	s.lanePending = true
	return true
}

// Tick advances the simulation by dt and returns the resulting snapshot.
// A non-positive (or NaN) dt changes nothing.
func (s *Session) Tick(dt float64) Snapshot {
	s.mu.Lock()
	if !(dt > 0) || math.IsInf(dt, 0) {
		snap := s.snapshot()
		s.mu.Unlock()
		return snap
	}

	s.ticks++
	s.applyPendingLane()

	switch s.phase {
	case PhaseCountdown:
		s.stepCountdown(dt)
	case PhaseChasing:
		s.stepChasing(dt)
	}

	snap := s.snapshot()
	s.unlockAndNotify()
	return snap
}

// Snapshot returns the current state without advancing it.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) applyPendingLane() {
	if !s.lanePending {
		return
	}
	s.lanePending = false
	if s.phase == PhaseChasing {
		s.player.Lane = s.pendingLane
	}
}

// rewind puts actors, stream and counters back at their start values.
func (s *Session) rewind() {
	s.countdown = s.cfg.CountdownDuration
	s.elapsed = 0
	s.speed = 1
	s.player = newActor(0, LaneCenter)
	s.pursuer = newActor(s.cfg.PursuerStartZ, LaneCenter)
	s.hopper.reset()
	s.stream.Reset(s.cfg.SpawnLead)
	s.score.clear()
	s.pendingLane = 0
	s.lanePending = false
}

func (s *Session) enterChasing() {
	s.stream.Reset(s.player.Z + s.cfg.SpawnLead)
	s.transition(PhaseChasing)
}

func (s *Session) enterLost() {
	s.transition(PhaseLost)
	s.score.Reconcile()
	s.logger.Debug("run lost", "score", s.score.Score().Current, "high", s.score.Score().High)
}

// transition must be called with mu held.
func (s *Session) transition(to Phase) {
	from := s.phase
	if !CanTransition(from, to) {
		s.logger.Error("illegal phase transition", "from", from, "to", to)
		return
	}
	s.phase = to
	s.logger.Debug("phase", "from", from, "to", to, "tick", s.ticks)
	if len(s.hooks) > 0 {
		s.fired = append(s.fired, Transition{From: from, To: to, Tick: s.ticks})
	}
}

func (s *Session) unlockAndNotify() {
	fired := s.fired
	s.fired = nil
	hooks := s.hooks
	s.mu.Unlock()

	for _, t := range fired {
		for _, h := range hooks {
			h(t)
		}
	}
}
