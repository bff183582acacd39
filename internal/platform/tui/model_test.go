package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/shadow-escape/internal/core"
	"github.com/vovakirdan/shadow-escape/internal/games/escape"
	"github.com/vovakirdan/shadow-escape/internal/games/escape/sim"
)

func newTestModel(t *testing.T) (Model, *escape.Game) {
	t.Helper()
	g := escape.New(escape.DefaultOptions())
	cfg := core.DefaultConfig()
	cfg.Seed = 99
	m := NewModel(g, cfg)
	m.shotDir = t.TempDir()
	m.Init()
	return m, g
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelStartsRunOnSpace(t *testing.T) {
	m, g := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = update(t, m, TickMsg{})

	require.Equal(t, sim.PhaseCountdown, g.Snapshot().Phase)
	assert.Empty(t, m.inputFrame.Actions, "the frame is cleared after a tick")
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).quitting)
	assert.Empty(t, next.(Model).View(), "nothing is drawn while quitting")
}

func TestModelResizeKeepsRun(t *testing.T) {
	m, g := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg{})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, sim.PhaseCountdown, g.Snapshot().Phase, "resizing keeps the run")
	assert.Equal(t, 100, m.screen.Width())
	assert.Equal(t, 30, m.screen.Height())
	assert.Contains(t, m.View(), "GET READY")
}

func TestModelScreenshot(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(m.shotDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	name := entries[0].Name()
	assert.True(t, strings.HasPrefix(name, "escape_"), "screenshot name %q", name)

	data, err := os.ReadFile(filepath.Join(m.shotDir, name))
	require.NoError(t, err)
	assert.Contains(t, string(data), "SHADOW ESCAPE")
	assert.Contains(t, ansi.Strip(m.View()), "saved "+name)

	for range flashTicks {
		m = update(t, m, TickMsg{})
	}
	assert.NotContains(t, ansi.Strip(m.View()), "saved ", "the status line expires")
}

func TestModelScreenshotFailureIsReported(t *testing.T) {
	m, _ := newTestModel(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	m.shotDir = filepath.Join(blocker, "shots")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Contains(t, ansi.Strip(m.View()), "screenshot failed")
}
