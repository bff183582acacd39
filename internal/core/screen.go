package core

import (
	"strings"
	"unicode/utf8"
)

// Cell is one character position on the screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a row-major character buffer the renderer draws into and the
// platform turns into styled terminal output.
type Screen struct {
	w, h  int
	cells []Cell
}

// NewScreen returns a blank w×h buffer.
func NewScreen(w, h int) *Screen {
	s := &Screen{}
	s.Resize(w, h)
	return s
}

func (s *Screen) Width() int  { return s.w }
func (s *Screen) Height() int { return s.h }

// Resize changes the dimensions and blanks the buffer. Frames are redrawn
// from scratch, so nothing is carried over.
func (s *Screen) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if s.cells != nil && w == s.w && h == s.h {
		return
	}
	s.w, s.h = w, h
	s.cells = make([]Cell, w*h)
	s.Clear()
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return 0, false
	}
	return y*s.w + x, true
}

// SetColored places a rune. Coordinates outside the buffer are ignored.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = Cell{Rune: r, Color: c}
	}
}

// GetCell returns the cell at (x, y), blank when out of bounds.
func (s *Screen) GetCell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blankCell
}

// DrawTextColored writes text from (x, y), one cell per rune, clipped at
// the edges.
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColored(x, y, r, c)
		x++
	}
}

// DrawTextCentered writes text centered on row y.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	s.DrawTextColored((s.w-utf8.RuneCountInString(text))/2, y, text, c)
}

// DrawRect fills r with the given rune in the default color.
func (s *Screen) DrawRect(r Rect, fill rune) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetColored(x, y, fill, ColorDefault)
		}
	}
}

// DrawBox outlines r with box-drawing characters.
func (s *Screen) DrawBox(r Rect, c Color) {
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < right; x++ {
		s.SetColored(x, r.Y, '─', c)
		s.SetColored(x, bottom, '─', c)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.SetColored(r.X, y, '│', c)
		s.SetColored(right, y, '│', c)
	}
	s.SetColored(r.X, r.Y, '┌', c)
	s.SetColored(right, r.Y, '┐', c)
	s.SetColored(r.X, bottom, '└', c)
	s.SetColored(right, bottom, '┘', c)
}

// String returns the buffer as plain text, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow((s.w + 1) * s.h)
	for y := range s.h {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range s.cells[y*s.w : (y+1)*s.w] {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}
