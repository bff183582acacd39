package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runeAt(s *Screen, x, y int) rune { return s.GetCell(x, y).Rune }

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(40, 12)

	require.Equal(t, 40, s.Width())
	require.Equal(t, 12, s.Height())
	blank := strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", 40)+"\n", 12), "\n")
	assert.Equal(t, blank, s.String())
}

func TestScreenSetColoredClips(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '▓', ColorRed)
	assert.Equal(t, Cell{Rune: '▓', Color: ColorRed}, s.GetCell(5, 5))

	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(10, 0, 'A', ColorRed)
	s.SetColored(0, 100, 'A', ColorRed)
	assert.Equal(t, ' ', runeAt(s, 9, 0), "out of bounds writes must not wrap")
	assert.Equal(t, ' ', runeAt(s, 0, 1))
	assert.Equal(t, ' ', runeAt(s, -1, 0), "out of bounds reads are blank")
}

func TestScreenDrawTextCountsRunes(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawTextColored(0, 0, "HI: 42m", ColorGray)
	s.DrawTextColored(0, 1, "◆█x", ColorDefault)
	s.DrawTextColored(18, 2, "Hello", ColorDefault)

	lines := strings.Split(s.String(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "HI: 42m"), "row 0 = %q", lines[0])
	assert.Equal(t, ColorGray, s.GetCell(6, 0).Color, "every cell is colored")
	assert.Equal(t, 'x', runeAt(s, 2, 1), "multi-byte runes take one cell each")
	assert.True(t, strings.HasSuffix(lines[2], "He"), "text clips at the right edge, row 2 = %q", lines[2])
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi", ColorWhite)

	assert.Equal(t, 'H', runeAt(s, 9, 2))
	assert.Equal(t, 'i', runeAt(s, 10, 2))
}

func TestScreenDrawBoxAndRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorRed)
	s.DrawRect(NewRect(1, 1, 5, 4).Inset(1), '#')

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		assert.Equal(t, want, runeAt(s, pos[0], pos[1]), "corner at %v", pos)
	}
	for x := 2; x < 5; x++ {
		assert.Equal(t, '─', runeAt(s, x, 1), "top edge at x=%d", x)
		assert.Equal(t, '─', runeAt(s, x, 4), "bottom edge at x=%d", x)
	}
	assert.Equal(t, Cell{Rune: '│', Color: ColorRed}, s.GetCell(1, 2))

	assert.Equal(t, '#', runeAt(s, 2, 2))
	assert.Equal(t, '#', runeAt(s, 4, 3))
	assert.Equal(t, ' ', runeAt(s, 6, 2), "fill stays inside the box")
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawTextColored(0, 0, "abc", ColorDefault)
	s.DrawTextColored(0, 1, "def", ColorDefault)
	assert.Equal(t, "abc\ndef", s.String())

	s.Resize(4, 1)
	require.Equal(t, 4, s.Width())
	require.Equal(t, 1, s.Height())
	assert.Equal(t, "    ", s.String(), "resizing blanks the buffer")

	s.Resize(-5, 2)
	assert.Zero(t, s.Width(), "negative sizes clamp to zero")
	assert.Equal(t, "\n", s.String())
}
