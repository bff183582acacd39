package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCenteredRect(t *testing.T) {
	r := CenteredRect(80, 24, 20, 6)
	assert.Equal(t, 30, r.X)
	assert.Equal(t, 9, r.Y)
	assert.Equal(t, 50, r.Right())
	assert.Equal(t, 15, r.Bottom())
}

func TestRectInset(t *testing.T) {
	assert.Equal(t, NewRect(3, 4, 8, 4), NewRect(2, 3, 10, 6).Inset(1))

	tiny := NewRect(0, 0, 1, 1).Inset(2)
	assert.Zero(t, tiny.W, "inset past the size collapses")
	assert.Zero(t, tiny.H)
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{1, 0, 2, 1},
		{-1, 0, 2, 0},
		{3, 0, 2, 2},
		{0, 0, 2, 0},
		{2, 0, 2, 2},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, Clamp(tc.val, tc.min, tc.max), "Clamp(%d, %d, %d)", tc.val, tc.min, tc.max)
	}

	assert.Equal(t, 1.0, Clamp(1.5, 0.0, 1.0))
}

func TestLerp(t *testing.T) {
	tests := []struct {
		name          string
		a, b, t, want float64
	}{
		{"start", -2, 2, 0, -2},
		{"halfway", -2, 2, 0.5, 0},
		{"end", -2, 2, 1, 2},
		{"overshoot clamps", -2, 2, 3.5, 2},
		{"negative clamps", -2, 2, -1, -2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Lerp(tc.a, tc.b, tc.t))
		})
	}
}

func TestAbs(t *testing.T) {
	assert.Equal(t, 2, Abs(-2))
	assert.Equal(t, 2, Abs(2))
	assert.Zero(t, Abs(0))
}
