package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shadow-escape/internal/core"
)

// Game is what the terminal loop drives. Games hold pure logic with no
// Bubble Tea dependency; the platform maps keys, keeps time and renders.
type Game interface {
	// ID names the game in screenshot files.
	ID() string

	// Title is the human-readable name.
	Title() string

	// Reset starts over with the given screen size, tick rate and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State summarizes score, game over and pause.
	State() core.GameState
}

// flashTicks is how long a status line stays on screen.
const flashTicks = 90

// Model is the Bubble Tea model for one game.
type Model struct {
	game    Game
	screen  *core.Screen
	keys    *KeyMapper
	config  core.RuntimeConfig
	shotDir string

	inputFrame core.InputFrame
	gameState  core.GameState

	flash      string
	flashLeft  int
	quitting   bool
	backToMenu bool
}

// NewModel wraps game. A zero seed is replaced by the current time.
func NewModel(game Game, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	home, _ := os.UserHomeDir()
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:       NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		shotDir:    filepath.Join(home, ".escape", "screenshots"),
	}
}

// Init resets the game and starts the tick loop, so building a model has
// no side effects.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config)
}

// Update handles keys, resizes and ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The renderer scales to any size, so the run keeps going.
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		m.gameState = m.game.Step(m.inputFrame).State
		m.inputFrame = core.NewInputFrame()
		if m.flashLeft > 0 {
			m.flashLeft--
		}
		return m, tickCmd(m.config)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys.Screenshot) {
		path, err := m.saveScreenshot()
		if err != nil {
			m.setFlash("screenshot failed: " + err.Error())
		} else {
			m.setFlash("saved " + filepath.Base(path))
		}
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack && m.gameState.GameOver:
		m.backToMenu = true
		return m, tea.Quit
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m *Model) setFlash(text string) {
	m.flash, m.flashLeft = text, flashTicks
}

// saveScreenshot writes the current frame as plain text and returns its path.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)
	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(m.shotDir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the game, with any status line over the bottom row.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.game.Render(m.screen)
	if m.flashLeft > 0 {
		m.screen.DrawTextCentered(m.screen.Height()-1, " "+m.flash+" ", core.ColorYellow)
	}
	return RenderScreen(m.screen)
}

// IsQuitting reports whether the user asked to exit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user left a finished run with back.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game full-screen until the user quits.
func Run(game Game, cfg core.RuntimeConfig) error {
	_, err := tea.NewProgram(NewModel(game, cfg), tea.WithAltScreen()).Run()
	return err
}
