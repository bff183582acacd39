package web

import (
	"time"

	"github.com/vovakirdan/shadow-escape/internal/core"
	"github.com/vovakirdan/shadow-escape/internal/games/escape/sim"
	"github.com/vovakirdan/shadow-escape/internal/storage"
)

// Message types on the /ws connection.
const (
	TypeWelcome  = "welcome"
	TypeSnapshot = "snapshot"
	TypeError    = "error"
)

// Command names a client may send as {"type": "<command>"}.
const (
	CommandStart   = "start"
	CommandReset   = "reset"
	CommandLeft    = "left"
	CommandRight   = "right"
	CommandPause   = "pause"
	CommandRestart = "restart"
)

// commandActions maps client commands onto the game's input actions.
var commandActions = map[string]core.Action{
	CommandStart:   core.ActionStart,
	CommandReset:   core.ActionRestart,
	CommandRestart: core.ActionRestart,
	CommandLeft:    core.ActionLeft,
	CommandRight:   core.ActionRight,
	CommandPause:   core.ActionPause,
}

// ClientMessage is a command from the browser.
type ClientMessage struct {
	Type string `json:"type"`
}

// Welcome is the first message of every connection.
type Welcome struct {
	Type     string     `json:"type"`
	Seed     int64      `json:"seed"`
	TickRate int        `json:"tick_rate"`
	Config   sim.Config `json:"config"`
}

// SnapshotMessage carries one tick's state.
type SnapshotMessage struct {
	Type     string       `json:"type"`
	RunID    string       `json:"run_id,omitempty"`
	Paused   bool         `json:"paused"`
	Snapshot sim.Snapshot `json:"snapshot"`
}

// ErrorMessage reports a rejected command. The connection stays open.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// RunJSON is a stored run as served by /api/runs.
type RunJSON struct {
	RunID      string    `json:"run_id"`
	Score      int       `json:"score"`
	DurationMS int64     `json:"duration_ms"`
	Seed       int64     `json:"seed"`
	Ticks      uint64    `json:"ticks"`
	CreatedAt  time.Time `json:"created_at"`
}

func runJSON(r storage.Run) RunJSON {
	return RunJSON{
		RunID:      r.RunID,
		Score:      r.Score,
		DurationMS: r.Duration.Milliseconds(),
		Seed:       r.Seed,
		Ticks:      r.Ticks,
		CreatedAt:  r.CreatedAt,
	}
}
