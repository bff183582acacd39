package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceEmbedded names the embedded default in LoadEscapeFrom results.
const SourceEmbedded = "embedded"

// LoadEscape loads Shadow Escape configuration.
// Search order: customPath -> ~/.escape/configs/escape.yaml -> ./configs/escape.yaml -> embedded default
func LoadEscape(customPath string) (EscapeConfig, error) {
	cfg, _, err := LoadEscapeFrom(customPath)
	return cfg, err
}

// LoadEscapeFrom is LoadEscape that also reports which file was used.
// Only a custom path produces errors; broken files elsewhere are skipped.
func LoadEscapeFrom(customPath string) (EscapeConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return EscapeConfig{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseEscape(data)
		if err != nil {
			return EscapeConfig{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("escape.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseEscape(data); err == nil {
				return cfg, userCfgPath, nil
			}
		}
	}

	// Try local configs directory
	local := filepath.Join("configs", "escape.yaml")
	if data, err := os.ReadFile(local); err == nil {
		if cfg, err := ParseEscape(data); err == nil {
			return cfg, local, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseEscape(defaultEscapeYAML)
	if err != nil {
		return DefaultEscapeConfig(), SourceEmbedded, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// ParseEscape validates data against the schema and decodes it over the
// defaults, then checks the result is playable.
func ParseEscape(data []byte) (EscapeConfig, error) {
	if err := ValidateYAML(data); err != nil {
		return EscapeConfig{}, err
	}

	cfg := DefaultEscapeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EscapeConfig{}, err
	}
	if err := cfg.Sim().Validate(); err != nil {
		return EscapeConfig{}, err
	}
	return cfg, nil
}

// MarshalEscape renders cfg as YAML.
func MarshalEscape(cfg EscapeConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// UserConfigDir returns ~/.escape, or empty if home is unavailable.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".escape")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
