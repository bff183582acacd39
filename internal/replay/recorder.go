package replay

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/shadow-escape/internal/games/escape/sim"
)

// Recorder wraps a session and logs every call made through it. It exposes
// the same methods as *sim.Session. A failed write stops recording but never
// affects the session.
type Recorder struct {
	mu     sync.Mutex
	s      *sim.Session
	w      *jsonlZstdWriter
	header Header
	logger *log.Logger
	err    error
	closed bool
}

// NewRecorder writes the header for s to dst. s must not have been ticked
// or commanded yet, since the replay starts from its initial state.
func NewRecorder(dst io.WriteCloser, s *sim.Session, seed int64, logger *log.Logger) (*Recorder, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w, err := newJSONLZstdWriter(dst)
	if err != nil {
		dst.Close()
		return nil, fmt.Errorf("replay: open encoder: %w", err)
	}

	h := Header{
		Version:   Version,
		RunID:     uuid.NewString(),
		Seed:      seed,
		High:      s.Snapshot().Score.High,
		Config:    s.Config(),
		CreatedAt: time.Now().UTC(),
	}
	if err := w.Write(line{Header: &h}); err != nil {
		w.Close()
		return nil, fmt.Errorf("replay: write header: %w", err)
	}

	return &Recorder{s: s, w: w, header: h, logger: logger}, nil
}

// Create opens a new replay file in dir named after the run ID.
func Create(dir string, s *sim.Session, seed int64, logger *log.Logger) (*Recorder, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("replay: create dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "recording-*"+FileExt)
	if err != nil {
		return nil, "", fmt.Errorf("replay: create file: %w", err)
	}

	r, err := NewRecorder(tmp, s, seed, logger)
	if err != nil {
		os.Remove(tmp.Name())
		return nil, "", err
	}

	path := filepath.Join(dir, r.header.RunID+FileExt)
	if err := os.Rename(tmp.Name(), path); err != nil {
		// Keep recording under the temp name.
		path = tmp.Name()
	}
	return r, path, nil
}

// Header returns the header written for this recording.
func (r *Recorder) Header() Header {
	return r.header
}

// Err returns the write error that stopped recording, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) record(ev Event) {
	if r.err != nil || r.closed {
		return
	}
	if err := r.w.Write(line{Event: &ev}); err != nil {
		r.err = err
		r.logger.Warn("replay recording stopped", "run", r.header.RunID, "error", err)
	}
}

// Start records and forwards a start command.
func (r *Recorder) Start() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	ok := r.s.Start()
	r.record(Event{Type: EventStart})
	return ok
}

// Reset records and forwards a reset.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.Reset()
	r.record(Event{Type: EventReset})
}

// SetLaneIntent records and forwards a lane intent.
func (r *Recorder) SetLaneIntent(d sim.Direction) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	ok := r.s.SetLaneIntent(d)
	r.record(Event{Type: EventLane, Dir: d.String()})
	return ok
}

// Tick forwards a tick and records the resulting digest.
func (r *Recorder) Tick(dt float64) sim.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.s.Tick(dt)
	r.record(Event{Type: EventTick, DT: dt, Tick: snap.Tick, Digest: snap.Digest()})
	return snap
}

// Snapshot forwards to the session; it is not recorded.
func (r *Recorder) Snapshot() sim.Snapshot {
	return r.s.Snapshot()
}

// Close flushes and closes the replay file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if err := r.w.Close(); err != nil {
		return fmt.Errorf("replay: close: %w", err)
	}
	return nil
}
