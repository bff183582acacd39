package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/shadow-escape/internal/games/escape/sim"
)

// Recording is a decoded replay file.
type Recording struct {
	Header Header
	Events []Event
}

// ReadFile decodes the replay at path.
func ReadFile(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a replay stream.
func Read(r io.Reader) (*Recording, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("replay: open decoder: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	rec := &Recording{}
	n := 0
	for sc.Scan() {
		n++
		var l line
		if err := json.Unmarshal(sc.Bytes(), &l); err != nil {
			return nil, fmt.Errorf("replay: line %d: %w", n, err)
		}
		switch {
		case n == 1 && l.Header != nil:
			rec.Header = *l.Header
		case n == 1:
			return nil, errors.New("replay: missing header")
		case l.Event != nil:
			rec.Events = append(rec.Events, *l.Event)
		default:
			return nil, fmt.Errorf("replay: line %d: empty record", n)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("replay: read: %w", err)
	}
	if n == 0 {
		return nil, errors.New("replay: empty file")
	}
	if rec.Header.Version != Version {
		return nil, fmt.Errorf("replay: unsupported version %d", rec.Header.Version)
	}
	return rec, nil
}

// Result summarises a verified replay.
type Result struct {
	Ticks int
	Runs  int // chases that ended in a crash
	Final sim.Snapshot
	Best  int
}

// fixedStore starts a replayed session from the recorded high score.
type fixedStore struct{ high int }

func (s *fixedStore) ReadHighScore() (int, error) { return s.high, nil }

func (s *fixedStore) WriteHighScore(score int) error {
	s.high = score
	return nil
}

// Verify rebuilds the session from the header and replays every event,
// comparing each tick digest. A mismatch returns an error wrapping
// ErrDivergence.
func (rec *Recording) Verify() (Result, error) {
	h := rec.Header
	s, err := sim.NewSession(h.Config, sim.NewSource(h.Seed), &fixedStore{high: h.High})
	if err != nil {
		return Result{}, fmt.Errorf("replay: rebuild session: %w", err)
	}

	var res Result
	prev := s.Snapshot().Phase
	for i, ev := range rec.Events {
		switch ev.Type {
		case EventStart:
			s.Start()
		case EventReset:
			s.Reset()
		case EventLane:
			d, err := sim.ParseDirection(ev.Dir)
			if err != nil {
				return res, fmt.Errorf("replay: event %d: %w", i, err)
			}
			s.SetLaneIntent(d)
		case EventTick:
			snap := s.Tick(ev.DT)
			res.Ticks++
			res.Final = snap
			if snap.Tick != ev.Tick || snap.Digest() != ev.Digest {
				return res, fmt.Errorf("%w at event %d (tick %d): digest %x, recorded %x",
					ErrDivergence, i, ev.Tick, snap.Digest(), ev.Digest)
			}
			if snap.Phase == sim.PhaseLost && prev != sim.PhaseLost {
				res.Runs++
			}
			prev = snap.Phase
			res.Best = max(res.Best, snap.Score.Current)
		default:
			return res, fmt.Errorf("replay: event %d: unknown type %q", i, ev.Type)
		}
		if ev.Type != EventTick {
			prev = s.Snapshot().Phase
		}
	}
	res.Final = s.Snapshot()
	return res, nil
}
