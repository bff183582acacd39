package sim

import "fmt"

// Phase is the top-level session state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCountdown
	PhaseChasing
	PhaseLost
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountdown:
		return "countdown"
	case PhaseChasing:
		return "chasing"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	if p < PhaseIdle || p > PhaseLost {
		return nil, fmt.Errorf("sim: invalid phase %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(b []byte) error {
	for q := PhaseIdle; q <= PhaseLost; q++ {
		if q.String() == string(b) {
			*p = q
			return nil
		}
	}
	return fmt.Errorf("sim: unknown phase %q", string(b))
}

// CanTransition reports whether from→to is an edge of the phase machine:
// idle→countdown, countdown→chasing, chasing→lost, lost→idle, and the reset
// edge from any active phase back to idle.
func CanTransition(from, to Phase) bool {
	switch {
	case from == PhaseIdle && to == PhaseCountdown:
		return true
	case from == PhaseCountdown && to == PhaseChasing:
		return true
	case from == PhaseChasing && to == PhaseLost:
		return true
	case from != PhaseIdle && to == PhaseIdle:
		return true
	}
	return false
}
