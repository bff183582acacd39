package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	player := Actor{Z: 50.2, Lane: LaneCenter}

	tests := []struct {
		name   string
		window []Obstacle
		wantID uint64
		hit    bool
	}{
		{"empty", nil, 0, false},
		{"same lane ahead", []Obstacle{{ID: 1, Z: 51, Lane: LaneCenter}}, 1, true},
		{"same lane behind", []Obstacle{{ID: 2, Z: 50, Lane: LaneCenter}}, 2, true},
		{"other lane", []Obstacle{{ID: 3, Z: 50.2, Lane: LaneLeft}}, 0, false},
		{"just beyond threshold", []Obstacle{{ID: 4, Z: 51.25, Lane: LaneCenter}}, 0, false},
		{"too far", []Obstacle{{ID: 5, Z: 60, Lane: LaneCenter}}, 0, false},
		{
			"first match wins",
			[]Obstacle{
				{ID: 6, Z: 49.5, Lane: LaneRight},
				{ID: 7, Z: 49.9, Lane: LaneCenter},
				{ID: 8, Z: 50.5, Lane: LaneCenter},
			},
			7, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Detect(tt.window, player, 1.0)
			assert.Equal(t, tt.hit, ok)
			if tt.hit {
				assert.Equal(t, tt.wantID, got.ID)
			}
		})
	}
}

func TestDetectIgnoresRenderOffset(t *testing.T) {
	// Visually between lanes, logically still in the left lane.
	player := Actor{Z: 10, Lane: LaneLeft, RenderOffset: -0.1}
	_, ok := Detect([]Obstacle{{Z: 10, Lane: LaneCenter}}, player, 1.0)
	assert.False(t, ok)

	_, ok = Detect([]Obstacle{{Z: 10, Lane: LaneLeft}}, player, 1.0)
	assert.True(t, ok)
}

func TestDetectThresholdIsExclusive(t *testing.T) {
	player := Actor{Z: 50, Lane: LaneRight}
	window := []Obstacle{
		{ID: 1, Z: 49, Lane: LaneRight},
		{ID: 2, Z: 51, Lane: LaneRight},
	}
	_, ok := Detect(window, player, 1.0)
	assert.False(t, ok)
}
