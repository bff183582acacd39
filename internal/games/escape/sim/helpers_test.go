package sim

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store unavailable")

// memStore is an in-memory HighScoreStore that can be told to fail.
type memStore struct {
	mu       sync.Mutex
	high     int
	writes   []int
	readErr  error
	writeErr error
}

func (m *memStore) ReadHighScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return 0, m.readErr
	}
	return m.high, nil
}

func (m *memStore) WriteHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.high = score
	m.writes = append(m.writes, score)
	return nil
}

func (m *memStore) Writes() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.writes...)
}

// scriptedSource replays fixed values, cycling when exhausted.
type scriptedSource struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	return v % n
}

func newTestSession(t *testing.T, cfg Config, rng Source, store HighScoreStore, opts ...Option) *Session {
	t.Helper()
	s, err := NewSession(cfg, rng, store, opts...)
	require.NoError(t, err)
	return s
}

// chase starts s and ticks through a countdown of whole seconds.
func chase(t *testing.T, s *Session) {
	t.Helper()
	require.True(t, s.Start())
	for s.Phase() == PhaseCountdown {
		s.Tick(1)
	}
	require.Equal(t, PhaseChasing, s.Phase())
}

// parkStream empties the window and pushes the cursor out of reach so that no
// obstacle spawns during a hand-built scenario.
func parkStream(s *Session, obstacles ...Obstacle) {
	s.stream.window = append(s.stream.window[:0], obstacles...)
	s.stream.lastSpawnZ = 1e9
}
