package core

import "slices"

// Action is a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A, H - lane change
	ActionRight          // Right arrow, D, L - lane change
	ActionStart          // Enter, Space - start a run from the title card
	ActionRestart        // R - back to the title card after a crash
	ActionPause          // P - pause/unpause
	ActionBack           // Esc, B - leave the current screen
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions pressed since the last tick, in arrival
// order: two quick lane presses move two lanes.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make([]Action, 0, 4)}
}

// Set records an action.
func (f *InputFrame) Set(a Action) {
	f.Actions = append(f.Actions, a)
}

// Has reports whether a was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return slices.Contains(f.Actions, a)
}
