package sim

import (
	"errors"
	"fmt"
	"math"
)

// Config holds every tunable of a session. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	PlayerSpeed  float64 `json:"player_speed"`
	PursuerSpeed float64 `json:"pursuer_speed"`
	RampRate     float64 `json:"ramp_rate"`
	LaneEaseRate float64 `json:"lane_ease_rate"`

	CountdownDuration   float64 `json:"countdown_duration"`
	PursuerLaneInterval float64 `json:"pursuer_lane_interval"`
	PursuerStartZ       float64 `json:"pursuer_start_z"`

	// SpawnLead places the spawn cursor this far ahead of the player when the
	// chase begins.
	SpawnLead float64      `json:"spawn_lead"`
	Obstacles StreamConfig `json:"obstacles"`

	ZThreshold float64     `json:"z_threshold"`
	Controls   LaneMapping `json:"controls"`
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		PlayerSpeed:         10,
		PursuerSpeed:        10,
		RampRate:            0.005,
		LaneEaseRate:        15,
		CountdownDuration:   5,
		PursuerLaneInterval: 1.5,
		PursuerStartZ:       0,
		SpawnLead:           20,
		Obstacles: StreamConfig{
			MinGap:       6,
			MaxGap:       14,
			ViewDistance: 100,
			CullDistance: 20,
			Kinds:        2,
		},
		ZThreshold: 1.0,
		Controls:   DefaultLaneMapping(),
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(positive(c.PlayerSpeed), "player speed must be > 0, got %v", c.PlayerSpeed)
	check(positive(c.PursuerSpeed), "pursuer speed must be > 0, got %v", c.PursuerSpeed)
	check(nonNegative(c.RampRate), "ramp rate must be >= 0, got %v", c.RampRate)
	check(positive(c.LaneEaseRate), "lane ease rate must be > 0, got %v", c.LaneEaseRate)
	check(positive(c.CountdownDuration), "countdown duration must be > 0, got %v", c.CountdownDuration)
	check(positive(c.PursuerLaneInterval), "pursuer lane interval must be > 0, got %v", c.PursuerLaneInterval)
	check(finite(c.PursuerStartZ), "pursuer start z must be finite, got %v", c.PursuerStartZ)
	check(nonNegative(c.SpawnLead), "spawn lead must be >= 0, got %v", c.SpawnLead)

	o := c.Obstacles
	check(positive(o.MinGap), "obstacle min gap must be > 0, got %v", o.MinGap)
	check(finite(o.MaxGap) && o.MaxGap >= o.MinGap, "obstacle max gap must be >= min gap, got %v < %v", o.MaxGap, o.MinGap)
	check(positive(o.ViewDistance), "view distance must be > 0, got %v", o.ViewDistance)
	check(nonNegative(o.CullDistance), "cull distance must be >= 0, got %v", o.CullDistance)
	check(o.Kinds >= 1, "obstacle kinds must be >= 1, got %d", o.Kinds)

	check(positive(c.ZThreshold), "collision threshold must be > 0, got %v", c.ZThreshold)
	if err := c.Controls.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("sim: invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

func nonNegative(v float64) bool {
	return finite(v) && v >= 0
}
