package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaneOffsets(t *testing.T) {
	assert.Equal(t, -2.0, LaneLeft.Offset())
	assert.Equal(t, 0.0, LaneCenter.Offset())
	assert.Equal(t, 2.0, LaneRight.Offset())
}

func TestLaneClamp(t *testing.T) {
	assert.Equal(t, LaneLeft, ClampLane(-4))
	assert.Equal(t, LaneRight, ClampLane(7))
	assert.Equal(t, LaneLeft, LaneLeft.Shift(-1))
	assert.Equal(t, LaneRight, LaneRight.Shift(1))
	assert.Equal(t, LaneCenter, LaneLeft.Shift(1))
	assert.False(t, Lane(3).Valid())
	assert.True(t, LaneRight.Valid())
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection(" Left ")
	require.NoError(t, err)
	assert.Equal(t, DirectionLeft, d)

	d, err = ParseDirection("r")
	require.NoError(t, err)
	assert.Equal(t, DirectionRight, d)

	_, err = ParseDirection("up")
	assert.Error(t, err)
}

func TestLaneMappingValidate(t *testing.T) {
	tests := []struct {
		name    string
		m       LaneMapping
		wantErr bool
	}{
		{"default", DefaultLaneMapping(), false},
		{"mirrored", LaneMapping{LeftDelta: 1, RightDelta: -1}, false},
		{"same direction", LaneMapping{LeftDelta: 1, RightDelta: 1}, true},
		{"two lanes", LaneMapping{LeftDelta: -2, RightDelta: 2}, true},
		{"zero", LaneMapping{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
	assert.Equal(t, -1, DefaultLaneMapping().Delta(DirectionLeft))
	assert.Equal(t, 1, DefaultLaneMapping().Delta(DirectionRight))
}
