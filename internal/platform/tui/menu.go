package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuChoice is an entry on the title menu.
type MenuChoice int

const (
	MenuNone MenuChoice = iota
	MenuPlay
	MenuScores
	MenuQuit
)

var menuItems = []struct {
	choice MenuChoice
	label  string
}{
	{MenuPlay, "Play"},
	{MenuScores, "High Scores"},
	{MenuQuit, "Quit"},
}

// MenuKeyMap defines the key bindings for the title menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s")),
		Select: key.NewBinding(key.WithKeys("enter", " ")),
		Scores: key.NewBinding(key.WithKeys("tab")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c")),
	}
}

// MenuModel is the Bubble Tea model for the title menu.
type MenuModel struct {
	cursor   int
	width    int
	height   int
	high     int
	keys     MenuKeyMap
	choice   MenuChoice
	quitting bool
}

// NewMenuModel creates a new menu model showing the given best score.
func NewMenuModel(width, height, high int) MenuModel {
	return MenuModel{
		width:  width,
		height: height,
		high:   high,
		keys:   DefaultMenuKeyMap(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu. Any final choice ends the program;
// the caller reads it back with Choice.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.choice = MenuQuit
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Scores):
			m.choice = MenuScores
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			m.choice = menuItems[m.cursor].choice
			m.quitting = m.choice == MenuQuit
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(titleStyle.Render("S H A D O W   E S C A P E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerStyled(dimStyle.Render("outrun the shadow"), m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		line := "  " + item.label
		if i == m.cursor {
			line = activeStyle.Render("> " + item.label)
		}
		b.WriteString(centerStyled(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerStyled(dimStyle.Render(fmt.Sprintf("best: %dm", m.high)), m.width))
	b.WriteString("\n\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerStyled(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the user picked, MenuNone while undecided.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// centerStyled centers text that may carry ANSI styling.
func centerStyled(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
