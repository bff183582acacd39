package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shadow-escape/internal/core"
)

// SessionDeps are the collaborators a session needs. Any may be nil.
type SessionDeps struct {
	// NewGame builds a fresh game for every play.
	NewGame func() Game

	// Runs backs the scoreboard.
	Runs RunSource

	// HighScore reports the best score for the menu.
	HighScore func() int

	// Logger reports failures to release a finished game.
	Logger *log.Logger
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full flow: menu -> game or scores -> menu.
// This is the top-level model for SSH sessions and the bare command.
type SessionModel struct {
	deps     SessionDeps
	config   core.RuntimeConfig
	screen   sessionScreen
	menu     MenuModel
	game     Model
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model starting at the menu.
func NewSessionModel(deps SessionDeps, cfg core.RuntimeConfig) SessionModel {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	m := SessionModel{deps: deps, config: cfg}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	high := 0
	if m.deps.HighScore != nil {
		high = m.deps.HighScore()
	}
	return NewMenuModel(m.config.ScreenW, m.config.ScreenH, high)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil // stale tick from a finished game
	}

	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch m.menu.Choice() {
	case MenuQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuPlay:
		if m.deps.NewGame == nil {
			m.menu = m.newMenu()
			return m, nil
		}
		m.game = NewModel(m.deps.NewGame(), m.config)
		m.screen = screenGame
		return m, m.game.Init()

	case MenuScores:
		m.scores = NewScoreboardModel(m.deps.Runs, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = game
	}

	if m.game.BackToMenu() {
		m.closeGame()
		return m.toMenu()
	}

	if m.game.IsQuitting() {
		m.closeGame()
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// closeGame releases the finished game, flushing any recording.
func (m SessionModel) closeGame() {
	c, ok := m.game.game.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		m.deps.Logger.Error("closing game failed", "game", m.game.game.ID(), "error", err)
	}
}

// updateScores handles updates when the scoreboard is open.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsGoingBack() {
		return m.toMenu()
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// RunSession starts the Bubble Tea program at the title menu.
func RunSession(deps SessionDeps, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(deps, cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
