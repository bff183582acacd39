package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists every preset in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParseDifficultyPreset parses a preset name. Empty means normal.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// IsFixedPreset returns true if the preset disables the speed ramp.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// presetScaling is applied on top of the loaded config.
type presetScaling struct {
	ramp float64 // multiplies ramp_rate
	gap  float64 // multiplies min_gap and max_gap
}

var presetScales = map[DifficultyPreset]presetScaling{
	DifficultyEasy:   {ramp: 0.5, gap: 1.25},
	DifficultyNormal: {ramp: 1, gap: 1},
	DifficultyHard:   {ramp: 2, gap: 0.8},
}

// ApplyEscapePreset modifies the config based on a difficulty preset.
func ApplyEscapePreset(cfg *EscapeConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Motion.RampRate = 0
		return
	}

	sc, ok := presetScales[preset]
	if !ok {
		return
	}
	cfg.Motion.RampRate *= sc.ramp
	cfg.Obstacles.MinGap *= sc.gap
	cfg.Obstacles.MaxGap *= sc.gap
}
