package config

import (
	_ "embed"
)

//go:embed defaults/escape.yaml
var defaultEscapeYAML []byte

//go:embed defaults/escape.schema.json
var escapeSchemaJSON string

// DefaultEscapeConfig returns the default Shadow Escape configuration.
func DefaultEscapeConfig() EscapeConfig {
	return EscapeConfig{
		Motion: EscapeMotion{
			PlayerSpeed:  10,
			PursuerSpeed: 10,
			RampRate:     0.005,
			LaneEaseRate: 15,
		},
		Countdown: EscapeCountdown{
			Duration: 5,
		},
		Pursuer: EscapePursuer{
			LaneChangeInterval: 1.5,
			StartZ:             0,
		},
		Obstacles: EscapeObstacles{
			MinGap:       6,
			MaxGap:       14,
			ViewDistance: 100,
			CullDistance: 20,
			SpawnLead:    20,
			Kinds:        2,
		},
		Collision: EscapeCollision{
			ZThreshold: 1.0,
		},
		Controls: EscapeControls{
			LeftDelta:  -1,
			RightDelta: 1,
		},
	}
}

// DefaultEscapeYAML returns the embedded default config file.
func DefaultEscapeYAML() []byte {
	return append([]byte(nil), defaultEscapeYAML...)
}
