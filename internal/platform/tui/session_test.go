package tui

import (
	"bytes"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/shadow-escape/internal/core"
	"github.com/vovakirdan/shadow-escape/internal/games/escape"
	"github.com/vovakirdan/shadow-escape/internal/storage"
)

type fakeRuns struct {
	top, recent []storage.Run
	err         error
	recentCalls int
}

func (f *fakeRuns) TopRuns(int) ([]storage.Run, error) { return f.top, f.err }

func (f *fakeRuns) RecentRuns(int) ([]storage.Run, error) {
	f.recentCalls++
	return f.recent, f.err
}

func (f *fakeRuns) GetStats() (*storage.Stats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &storage.Stats{Runs: len(f.top), HighScore: 321, AvgScore: 200, TotalDistance: 400, TotalTime: 90 * time.Second}, nil
}

func newFakeRuns() *fakeRuns {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &fakeRuns{
		top: []storage.Run{
			{RunID: "a", Score: 321, Duration: 65 * time.Second, CreatedAt: now},
			{RunID: "b", Score: 79, Duration: 25 * time.Second, CreatedAt: now},
		},
		recent: []storage.Run{{RunID: "b", Score: 79, Duration: 25 * time.Second, CreatedAt: now}},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestSessionModel(t *testing.T, runs RunSource) SessionModel {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	deps := SessionDeps{
		NewGame:   func() Game { return escape.New(escape.DefaultOptions()) },
		Runs:      runs,
		HighScore: func() int { return 321 },
	}
	return NewSessionModel(deps, cfg)
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(SessionModel), cmd
}

func TestSessionMenuShowsBest(t *testing.T) {
	m := newTestSessionModel(t, nil)
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "S H A D O W")
	assert.Contains(t, view, "best: 321m")
}

func TestSessionPlayThenQuit(t *testing.T) {
	m := newTestSessionModel(t, nil)

	m, cmd := sessionUpdate(t, m, keyMsg("enter"))
	require.Equal(t, screenGame, m.screen, "Enter on Play opens the game")
	assert.NotNil(t, cmd, "opening the game starts the tick loop")

	m, _ = sessionUpdate(t, m, TickMsg{})
	assert.Contains(t, ansi.Strip(m.View()), "SHADOW ESCAPE", "title card before the run")

	m, cmd = sessionUpdate(t, m, keyMsg("q"))
	assert.True(t, m.quitting, "q in game quits the whole session")
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

// unflushableGame fails to close, like a recording whose file went away.
type unflushableGame struct {
	*escape.Game
	closed int
}

func (g *unflushableGame) Close() error {
	g.closed++
	return errors.New("replay flush failed")
}

func TestSessionQuitClosesGameAndLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	game := &unflushableGame{Game: escape.New(escape.DefaultOptions())}
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	m := NewSessionModel(SessionDeps{
		NewGame: func() Game { return game },
		Logger:  log.New(&buf),
	}, cfg)

	m, _ = sessionUpdate(t, m, keyMsg("enter"))
	_, _ = sessionUpdate(t, m, keyMsg("q"))

	assert.Equal(t, 1, game.closed, "quitting closes the game once")
	assert.Contains(t, buf.String(), "replay flush failed")
}

func TestSessionScoresAndBack(t *testing.T) {
	runs := newFakeRuns()
	m := newTestSessionModel(t, runs)

	m, _ = sessionUpdate(t, m, keyMsg("tab"))
	require.Equal(t, screenScores, m.screen, "Tab opens the scoreboard")
	view := ansi.Strip(m.View())
	for _, want := range []string{"HIGH SCORES", "321m", "1:05", "best 321m"} {
		assert.Contains(t, view, want)
	}

	m, _ = sessionUpdate(t, m, keyMsg("esc"))
	assert.Equal(t, screenMenu, m.screen, "Esc returns to the menu")
	assert.False(t, m.quitting)
	assert.Equal(t, MenuNone, m.menu.Choice(), "returning presents a fresh menu")
}

func TestSessionMenuQuitItem(t *testing.T) {
	m := newTestSessionModel(t, nil)
	m, _ = sessionUpdate(t, m, keyMsg("down"))
	m, _ = sessionUpdate(t, m, keyMsg("down"))
	m, cmd := sessionUpdate(t, m, keyMsg("enter"))
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
}

func TestSessionMenuIgnoresStaleTicks(t *testing.T) {
	m := newTestSessionModel(t, nil)
	m, cmd := sessionUpdate(t, m, TickMsg{})
	assert.Nil(t, cmd, "a stray tick must not restart anything from the menu")
	assert.Equal(t, screenMenu, m.screen)
}

func TestScoreboardToggleAndEmpty(t *testing.T) {
	runs := newFakeRuns()
	sb := NewScoreboardModel(runs, 80, 30)

	next, _ := sb.Update(keyMsg("tab"))
	sb = next.(ScoreboardModel)
	assert.Equal(t, 1, runs.recentCalls, "toggling loads recent runs")
	assert.Contains(t, ansi.Strip(sb.View()), "RECENT RUNS")

	view := ansi.Strip(NewScoreboardModel(nil, 80, 30).View())
	assert.Contains(t, view, "No runs recorded yet")
	assert.Contains(t, view, "no runs yet")
}

func TestScoreboardShowsLoadError(t *testing.T) {
	sb := NewScoreboardModel(&fakeRuns{err: errors.New("disk gone")}, 80, 30)
	assert.Contains(t, ansi.Strip(sb.View()), "scores unavailable: disk gone")
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		0:                       "0:00",
		1500 * time.Millisecond: "0:02",
		65 * time.Second:        "1:05",
		10 * time.Minute:        "10:00",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatDuration(in), "formatDuration(%v)", in)
	}
}
