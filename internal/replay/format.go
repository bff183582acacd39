// Package replay records Shadow Escape sessions as zstd-compressed JSONL and
// re-runs them to verify that the simulation is deterministic.
//
// A replay file holds one header line followed by one line per command or
// tick, in the order the session saw them. Tick lines carry the snapshot
// digest the session produced.
package replay

import (
	"errors"
	"time"

	"github.com/vovakirdan/shadow-escape/internal/games/escape/sim"
)

// Version is the replay format version written to headers.
const Version = 1

// FileExt is the extension of replay files.
const FileExt = ".jsonl.zst"

// ErrDivergence reports that a replay did not reproduce the recorded state.
var ErrDivergence = errors.New("replay: divergence")

// Header describes how to rebuild the recorded session.
type Header struct {
	Version   int        `json:"version"`
	RunID     string     `json:"run_id"`
	Seed      int64      `json:"seed"`
	High      int        `json:"high"` // high score the session started with
	Config    sim.Config `json:"config"`
	CreatedAt time.Time  `json:"created_at"`
}

// EventType names a recorded call.
type EventType string

const (
	EventStart EventType = "start"
	EventReset EventType = "reset"
	EventLane  EventType = "lane"
	EventTick  EventType = "tick"
)

// Event is one recorded call on the session.
type Event struct {
	Type   EventType `json:"t"`
	Dir    string    `json:"dir,omitempty"`
	DT     float64   `json:"dt,omitempty"`
	Tick   uint64    `json:"tick,omitempty"`
	Digest uint64    `json:"digest,omitempty"`
}

// line is the on-disk shape: exactly one of the fields is set.
type line struct {
	Header *Header `json:"header,omitempty"`
	Event  *Event  `json:"event,omitempty"`
}
