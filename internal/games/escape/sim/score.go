package sim

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
)

// HighScoreStore persists the best score across sessions.
// Implementations may fail; the session treats failures as recoverable.
type HighScoreStore interface {
	ReadHighScore() (int, error)
	WriteHighScore(score int) error
}

// Score is the score pair exposed in snapshots.
type Score struct {
	Current int `json:"current"`
	High    int `json:"high"`
}

// ScoreTracker derives the current score from player distance and reconciles
// it with the persisted high score.
type ScoreTracker struct {
	store  HighScoreStore
	logger *log.Logger

	current   int
	high      int // best seen, including the run in progress
	persisted int // last value known to be in the store
	failing   bool
}

// NewScoreTracker loads the persisted high score. A nil store or a failing
// read starts from zero. A nil logger discards.
func NewScoreTracker(store HighScoreStore, logger *log.Logger) *ScoreTracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &ScoreTracker{store: store, logger: logger}
	if store == nil {
		return t
	}

	high, err := store.ReadHighScore()
	if err != nil {
		logger.Warn("could not read high score, starting from 0", "error", err)
		return t
	}
	if high < 0 {
		high = 0
	}
	t.high = high
	t.persisted = high
	return t
}

// Observe recomputes the current score from the player's Z position.
func (t *ScoreTracker) Observe(z float64) {
	t.current = max(0, int(math.Floor(z)))
	if t.current > t.high {
		t.high = t.current
	}
}

// Reconcile writes the current score when it beats the persisted high score.
// Ties never write. A failed write leaves in-memory state untouched and is
// retried at the next reconciliation; only the first failure of a streak is
// logged at warn level.
func (t *ScoreTracker) Reconcile() bool {
	if t.current <= t.persisted {
		return false
	}
	if t.store != nil {
		if err := t.store.WriteHighScore(t.current); err != nil {
			if !t.failing {
				t.logger.Warn("could not write high score", "score", t.current, "error", err)
			}
			t.failing = true
			return false
		}
	}
	t.failing = false
	t.persisted = t.current
	return true
}

// Score returns the current/high pair.
func (t *ScoreTracker) Score() Score {
	return Score{Current: t.current, High: t.high}
}

func (t *ScoreTracker) clear() {
	t.current = 0
}
