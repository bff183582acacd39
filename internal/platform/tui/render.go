package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shadow-escape/internal/core"
)

// Theme styles each core.Color. Colors past the end render unstyled.
type Theme []lipgloss.Style

func fg(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }

// DefaultTheme is the 256-color night palette.
var DefaultTheme = Theme{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorRed:        fg("1"),
	core.ColorYellow:     fg("3"),
	core.ColorCyan:       fg("6"),
	core.ColorWhite:      fg("7"),
	core.ColorGray:       fg("245"),
	core.ColorDarkGray:   fg("238"),
	core.ColorMagenta:    fg("5"),
	core.ColorBrightCyan: fg("14").Bold(true),
	core.ColorBrightRed:  fg("9").Bold(true),
	core.ColorAmber:      fg("214"),
}

func (t Theme) style(c core.Color) lipgloss.Style {
	if int(c) < len(t) {
		return t[c]
	}
	return lipgloss.NewStyle()
}

// Render turns the buffer into styled rows. Cells sharing a color are
// emitted as one styled span.
func (t Theme) Render(s *core.Screen) string {
	var sb, span strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			span.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				span.WriteRune(cell.Rune)
			}
			sb.WriteString(t.style(color).Render(span.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders with DefaultTheme.
func RenderScreen(s *core.Screen) string {
	return DefaultTheme.Render(s)
}
