// Package core provides fundamental types and utilities shared by the escape
// simulation and its terminal front end. It has no external dependencies
// (especially no Bubble Tea) so game logic stays pure and testable.
package core

import "cmp"

// Rect is an axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return NewRect(r.X+n, r.Y+n, max(r.W-2*n, 0), max(r.H-2*n, 0))
}

// CenteredRect returns a w×h rectangle centered inside an area of areaW×areaH.
func CenteredRect(areaW, areaH, w, h int) Rect {
	return NewRect((areaW-w)/2, (areaH-h)/2, w, h)
}

// Clamp restricts v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// Lerp moves from a toward b by fraction t. t is clamped to [0, 1] so the
// result never overshoots b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp(t, 0, 1)
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
