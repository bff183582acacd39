// Package config provides YAML-based configuration loading, schema
// validation and difficulty presets for Shadow Escape.
package config

import "github.com/vovakirdan/shadow-escape/internal/games/escape/sim"

// EscapeConfig contains all configuration for Shadow Escape.
type EscapeConfig struct {
	Motion    EscapeMotion    `yaml:"motion" json:"motion"`
	Countdown EscapeCountdown `yaml:"countdown" json:"countdown"`
	Pursuer   EscapePursuer   `yaml:"pursuer" json:"pursuer"`
	Obstacles EscapeObstacles `yaml:"obstacles" json:"obstacles"`
	Collision EscapeCollision `yaml:"collision" json:"collision"`
	Controls  EscapeControls  `yaml:"controls" json:"controls"`
}

// EscapeMotion defines base speeds and the speed ramp.
type EscapeMotion struct {
	PlayerSpeed  float64 `yaml:"player_speed" json:"player_speed"`
	PursuerSpeed float64 `yaml:"pursuer_speed" json:"pursuer_speed"`
	RampRate     float64 `yaml:"ramp_rate" json:"ramp_rate"`           // multiplier gained per second of chase
	LaneEaseRate float64 `yaml:"lane_ease_rate" json:"lane_ease_rate"` // render-only
}

// EscapeCountdown defines the pre-chase countdown.
type EscapeCountdown struct {
	Duration float64 `yaml:"duration" json:"duration"`
}

// EscapePursuer defines the shadow's countdown behaviour.
type EscapePursuer struct {
	LaneChangeInterval float64 `yaml:"lane_change_interval" json:"lane_change_interval"`
	StartZ             float64 `yaml:"start_z" json:"start_z"`
}

// EscapeObstacles defines obstacle streaming.
type EscapeObstacles struct {
	MinGap       float64 `yaml:"min_gap" json:"min_gap"`
	MaxGap       float64 `yaml:"max_gap" json:"max_gap"`
	ViewDistance float64 `yaml:"view_distance" json:"view_distance"`
	CullDistance float64 `yaml:"cull_distance" json:"cull_distance"`
	SpawnLead    float64 `yaml:"spawn_lead" json:"spawn_lead"`
	Kinds        int     `yaml:"kinds" json:"kinds"`
}

// EscapeCollision defines the hit test.
type EscapeCollision struct {
	ZThreshold float64 `yaml:"z_threshold" json:"z_threshold"`
}

// EscapeControls maps key directions to lane deltas.
type EscapeControls struct {
	LeftDelta  int `yaml:"left_delta" json:"left_delta"`
	RightDelta int `yaml:"right_delta" json:"right_delta"`
}

// Sim converts the file layout into the simulation's config.
func (c EscapeConfig) Sim() sim.Config {
	return sim.Config{
		PlayerSpeed:         c.Motion.PlayerSpeed,
		PursuerSpeed:        c.Motion.PursuerSpeed,
		RampRate:            c.Motion.RampRate,
		LaneEaseRate:        c.Motion.LaneEaseRate,
		CountdownDuration:   c.Countdown.Duration,
		PursuerLaneInterval: c.Pursuer.LaneChangeInterval,
		PursuerStartZ:       c.Pursuer.StartZ,
		SpawnLead:           c.Obstacles.SpawnLead,
		Obstacles: sim.StreamConfig{
			MinGap:       c.Obstacles.MinGap,
			MaxGap:       c.Obstacles.MaxGap,
			ViewDistance: c.Obstacles.ViewDistance,
			CullDistance: c.Obstacles.CullDistance,
			Kinds:        c.Obstacles.Kinds,
		},
		ZThreshold: c.Collision.ZThreshold,
		Controls: sim.LaneMapping{
			LeftDelta:  c.Controls.LeftDelta,
			RightDelta: c.Controls.RightDelta,
		},
	}
}

// FromSim is the inverse of Sim.
func FromSim(s sim.Config) EscapeConfig {
	return EscapeConfig{
		Motion: EscapeMotion{
			PlayerSpeed:  s.PlayerSpeed,
			PursuerSpeed: s.PursuerSpeed,
			RampRate:     s.RampRate,
			LaneEaseRate: s.LaneEaseRate,
		},
		Countdown: EscapeCountdown{Duration: s.CountdownDuration},
		Pursuer: EscapePursuer{
			LaneChangeInterval: s.PursuerLaneInterval,
			StartZ:             s.PursuerStartZ,
		},
		Obstacles: EscapeObstacles{
			MinGap:       s.Obstacles.MinGap,
			MaxGap:       s.Obstacles.MaxGap,
			ViewDistance: s.Obstacles.ViewDistance,
			CullDistance: s.Obstacles.CullDistance,
			SpawnLead:    s.SpawnLead,
			Kinds:        s.Obstacles.Kinds,
		},
		Collision: EscapeCollision{ZThreshold: s.ZThreshold},
		Controls: EscapeControls{
			LeftDelta:  s.Controls.LeftDelta,
			RightDelta: s.Controls.RightDelta,
		},
	}
}
