package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/shadow-escape/internal/games/escape/sim"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseEscape(DefaultEscapeYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultEscapeConfig(), cfg)
}

func TestDefaultsMatchSimulation(t *testing.T) {
	assert.Equal(t, sim.DefaultConfig(), DefaultEscapeConfig().Sim())
	assert.Equal(t, DefaultEscapeConfig(), FromSim(sim.DefaultConfig()))
}

func TestParsePartialOverridesDefaults(t *testing.T) {
	cfg, err := ParseEscape([]byte("motion:\n  ramp_rate: 0.01\nobstacles:\n  kinds: 1\n"))
	require.NoError(t, err)

	want := DefaultEscapeConfig()
	want.Motion.RampRate = 0.01
	want.Obstacles.Kinds = 1
	assert.Equal(t, want, cfg)
}

func TestValidateYAML(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"empty", "", false},
		{"comment only", "# nothing\n", false},
		{"defaults", string(DefaultEscapeYAML()), false},
		{"unknown section", "physics:\n  gravity: 1\n", true},
		{"unknown key", "motion:\n  jump: 3\n", true},
		{"wrong type", "motion:\n  player_speed: fast\n", true},
		{"negative speed", "motion:\n  player_speed: -1\n", true},
		{"zero kinds", "obstacles:\n  kinds: 0\n", true},
		{"fractional kinds", "obstacles:\n  kinds: 1.5\n", true},
		{"two lane delta", "controls:\n  left_delta: -2\n", true},
		{"mirrored controls", "controls:\n  left_delta: 1\n  right_delta: -1\n", false},
		{"not yaml", "motion: [\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateYAML([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseRejectsUnplayableConfig(t *testing.T) {
	// Passes the schema, fails the cross-field check.
	_, err := ParseEscape([]byte("obstacles:\n  min_gap: 10\n  max_gap: 5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max gap")

	_, err = ParseEscape([]byte("controls:\n  left_delta: 1\n  right_delta: 1\n"))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultEscapeConfig()
	cfg.Pursuer.StartZ = 10

	data, err := MarshalEscape(cfg)
	require.NoError(t, err)
	got, err := ParseEscape(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadEscapeCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("countdown:\n  duration: 3\n"), 0o644))

	cfg, src, err := LoadEscapeFrom(path)
	require.NoError(t, err)
	assert.Equal(t, path, src)
	assert.Equal(t, 3.0, cfg.Countdown.Duration)

	_, err = LoadEscape(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("countdown:\n  duration: -3\n"), 0o644))
	_, err = LoadEscape(bad)
	assert.Error(t, err)
}

func TestLoadEscapeSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	_, src, err := LoadEscapeFrom("")
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, src)

	require.NoError(t, os.MkdirAll(filepath.Join(work, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(work, "configs", "escape.yaml"), []byte("countdown:\n  duration: 2\n"), 0o644))
	cfg, src, err := LoadEscapeFrom("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("configs", "escape.yaml"), src)
	assert.Equal(t, 2.0, cfg.Countdown.Duration)

	userDir := filepath.Join(home, ".escape", "configs")
	require.NoError(t, os.MkdirAll(userDir, 0o755))

	// A broken user file is skipped.
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "escape.yaml"), []byte("countdown: nope\n"), 0o644))
	cfg, _, err = LoadEscapeFrom("")
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Countdown.Duration)

	require.NoError(t, os.WriteFile(filepath.Join(userDir, "escape.yaml"), []byte("countdown:\n  duration: 4\n"), 0o644))
	cfg, src, err = LoadEscapeFrom("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userDir, "escape.yaml"), src)
	assert.Equal(t, 4.0, cfg.Countdown.Duration)
}

func TestPresets(t *testing.T) {
	for _, p := range Presets() {
		got, err := ParseDifficultyPreset(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := ParseDifficultyPreset("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyNormal, got)
	_, err = ParseDifficultyPreset("nightmare")
	assert.Error(t, err)

	base := DefaultEscapeConfig()

	fixed := base
	ApplyEscapePreset(&fixed, DifficultyFixed)
	assert.Zero(t, fixed.Motion.RampRate)
	assert.Equal(t, base.Obstacles, fixed.Obstacles)

	normal := base
	ApplyEscapePreset(&normal, DifficultyNormal)
	assert.Equal(t, base, normal)

	hard := base
	ApplyEscapePreset(&hard, DifficultyHard)
	assert.Greater(t, hard.Motion.RampRate, base.Motion.RampRate)
	assert.Less(t, hard.Obstacles.MinGap, base.Obstacles.MinGap)

	easy := base
	ApplyEscapePreset(&easy, DifficultyEasy)
	assert.Less(t, easy.Motion.RampRate, base.Motion.RampRate)
	assert.Greater(t, easy.Obstacles.MaxGap, base.Obstacles.MaxGap)

	for _, p := range Presets() {
		cfg := base
		ApplyEscapePreset(&cfg, p)
		assert.NoError(t, cfg.Sim().Validate(), "preset %s", p)
	}
}
