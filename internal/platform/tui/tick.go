// Package tui runs Shadow Escape in a terminal: the Bubble Tea tick loop,
// key bindings, the title menu and scoreboard, and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shadow-escape/internal/core"
)

// TickMsg advances the simulation by one fixed step.
type TickMsg time.Time

// tickCmd schedules the next tick for cfg's rate.
func tickCmd(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(cfg.TickInterval(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
