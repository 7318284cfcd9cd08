package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// configNames are the file names probed in each search directory, in order.
var configNames = []string{"flipmatch.yaml", "flipmatch.yml", "flipmatch.toml"}

// Load loads FlipMatch configuration.
// Search order: customPath -> ~/.flipmatch/configs/flipmatch.{yaml,toml}
// -> ./configs/flipmatch.{yaml,toml} -> embedded default.
// Only an explicit customPath can produce an error; the other locations are
// skipped silently when missing or malformed.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return Config{}, err
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, dir := range []string{userConfigDir(), "configs"} {
		if dir == "" {
			continue
		}
		for _, name := range configNames {
			if cfg, err := LoadFile(filepath.Join(dir, name)); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg.withDefaults(), nil
}

// LoadFile reads and parses a single config file, choosing the format by extension.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes config data in the format named by ext (".yaml", ".yml" or ".toml").
// Missing sections are filled from DefaultConfig.
func Parse(data []byte, ext string) (Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("yaml unmarshal: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("toml decode: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported extension: %q", ext)
	}

	cfg = cfg.withDefaults()
	if cfg.Difficulty != "" {
		preset, err := ParseDifficulty(string(cfg.Difficulty))
		if err != nil {
			return Config{}, err
		}
		cfg.Difficulty = preset
	}
	return cfg, nil
}

// userConfigDir returns the user config directory, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flipmatch", "configs")
}
