package core

import "time"

const defaultTickRate = 60

// RuntimeConfig is what the platform hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // columns
	ScreenH  int   // rows
	TickRate int   // fixed simulation ticks per second
	Seed     int64 // 0 asks the platform to pick one from the clock
}

// DefaultConfig is an 80×24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: defaultTickRate}
}

func (c RuntimeConfig) rate() int {
	if c.TickRate <= 0 {
		return defaultTickRate
	}
	return c.TickRate
}

// DeltaTime is the fixed step in seconds.
func (c RuntimeConfig) DeltaTime() float64 {
	return 1 / float64(c.rate())
}

// TickInterval is the wall-clock time between ticks.
func (c RuntimeConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.rate())
}

// GameState is the part of a game the platform cares about.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by every Step.
type StepResult struct {
	State GameState
}
