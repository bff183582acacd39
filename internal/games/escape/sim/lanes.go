// Package sim is the Shadow Escape simulation core: the session phase machine,
// lane-constrained motion for the player and the pursuing shadow, the streamed
// obstacle window, collision detection and score tracking.
//
// The package is UI-agnostic and deterministic: given the same Config, the same
// random Source and the same sequence of commands and tick durations it
// reproduces identical state.
package sim

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/shadow-escape/internal/core"
)

// LaneCount is the number of lanes on the track.
const LaneCount = 3

// Lane is a logical lane index in [0, LaneCount).
type Lane int

const (
	LaneLeft   Lane = 0
	LaneCenter Lane = 1
	LaneRight  Lane = 2
)

// laneOffsets maps lane index to lateral world offset.
var laneOffsets = [LaneCount]float64{-2, 0, 2}

// ClampLane converts an arbitrary index into a valid lane.
func ClampLane(i int) Lane {
	return Lane(core.Clamp(i, int(LaneLeft), int(LaneRight)))
}

// Valid reports whether l is a lane on the track.
func (l Lane) Valid() bool {
	return l >= LaneLeft && l <= LaneRight
}

// Offset returns the lateral world offset of the lane.
func (l Lane) Offset() float64 {
	return laneOffsets[ClampLane(int(l))]
}

// Shift moves the lane by delta, clamped to the track.
func (l Lane) Shift(delta int) Lane {
	return ClampLane(int(l) + delta)
}

// Direction is a lane-change request from the input source.
type Direction int

const (
	DirectionLeft Direction = iota
	DirectionRight
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection parses "left" or "right" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return DirectionLeft, nil
	case "right", "r":
		return DirectionRight, nil
	default:
		return 0, fmt.Errorf("sim: unknown direction %q", s)
	}
}

// LaneMapping translates a Direction into a lane index delta.
// It must agree with how the renderer lays lanes out on screen.
type LaneMapping struct {
	LeftDelta  int `json:"left_delta"`
	RightDelta int `json:"right_delta"`
}

// DefaultLaneMapping draws lane 0 leftmost: Left decrements, Right increments.
func DefaultLaneMapping() LaneMapping {
	return LaneMapping{LeftDelta: -1, RightDelta: 1}
}

// Delta returns the lane delta for d.
func (m LaneMapping) Delta(d Direction) int {
	if d == DirectionLeft {
		return m.LeftDelta
	}
	return m.RightDelta
}

// Validate checks that each direction moves exactly one lane and that the two
// directions are opposite.
func (m LaneMapping) Validate() error {
	if core.Abs(m.LeftDelta) != 1 || core.Abs(m.RightDelta) != 1 {
		return fmt.Errorf("sim: lane deltas must be -1 or 1, got left=%d right=%d", m.LeftDelta, m.RightDelta)
	}
	if m.LeftDelta != -m.RightDelta {
		return fmt.Errorf("sim: left and right lane deltas must be opposite, got left=%d right=%d", m.LeftDelta, m.RightDelta)
	}
	return nil
}
