package storage

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrKeeperClosed is returned by writes after Close.
var ErrKeeperClosed = errors.New("storage: high score keeper closed")

// HighScoreBackend is the synchronous store behind a HighScoreKeeper.
// *Store satisfies it.
type HighScoreBackend interface {
	ReadHighScore() (int, error)
	WriteHighScore(score int) error
}

// HighScoreKeeper moves high-score writes off the caller's goroutine.
// Writes are coalesced: only the largest pending value reaches the backend.
// It satisfies sim.HighScoreStore.
type HighScoreKeeper struct {
	backend HighScoreBackend
	logger  *log.Logger

	mu      sync.Mutex
	pending int
	dirty   bool
	closed  bool

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup
}

// NewHighScoreKeeper starts the writer goroutine. Call Close to flush it.
func NewHighScoreKeeper(backend HighScoreBackend, logger *log.Logger) *HighScoreKeeper {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	k := &HighScoreKeeper{
		backend: backend,
		logger:  logger,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	k.wg.Add(1)
	go k.loop()
	return k
}

// ReadHighScore reads through to the backend, accounting for a write that
// has not landed yet.
func (k *HighScoreKeeper) ReadHighScore() (int, error) {
	high, err := k.backend.ReadHighScore()

	k.mu.Lock()
	defer k.mu.Unlock()
	if k.dirty && k.pending > high {
		return k.pending, nil
	}
	return high, err
}

// WriteHighScore queues score and returns immediately.
func (k *HighScoreKeeper) WriteHighScore(score int) error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return ErrKeeperClosed
	}
	if !k.dirty || score > k.pending {
		k.pending = score
	}
	k.dirty = true
	k.mu.Unlock()

	select {
	case k.wake <- struct{}{}:
	default:
	}
	return nil
}

// Close flushes any pending write and stops the writer.
func (k *HighScoreKeeper) Close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	k.mu.Unlock()

	close(k.done)
	k.wg.Wait()
	return nil
}

func (k *HighScoreKeeper) loop() {
	defer k.wg.Done()
	for {
		select {
		case <-k.wake:
			k.flush()
		case <-k.done:
			k.flush()
			return
		}
	}
}

func (k *HighScoreKeeper) flush() {
	k.mu.Lock()
	if !k.dirty {
		k.mu.Unlock()
		return
	}
	score := k.pending
	k.dirty = false
	k.mu.Unlock()

	if err := k.backend.WriteHighScore(score); err != nil {
		k.logger.Warn("high score write failed", "score", score, "error", err)
	}
}
