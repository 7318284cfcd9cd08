// Package config provides YAML/TOML game configuration loading and
// difficulty management for FlipMatch.
package config

import (
	"errors"
	"fmt"
)

// Config contains all tunable rules of a FlipMatch session.
type Config struct {
	Levels       []Level            `yaml:"levels" toml:"levels"`
	Moves        MovesConfig        `yaml:"moves" toml:"moves"`
	Scoring      Scoring            `yaml:"scoring" toml:"scoring"`
	QuickMatch   QuickMatchConfig   `yaml:"quick_match" toml:"quick_match"`
	Achievements AchievementsConfig `yaml:"achievements" toml:"achievements"`
	Difficulty   DifficultyPreset   `yaml:"difficulty" toml:"difficulty"`
}

// Level defines the grid dimensions of a single level.
type Level struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

// Cards returns the number of cards dealt for the level.
func (l Level) Cards() int {
	return l.Width * l.Height
}

// Pairs returns the number of pairs dealt for the level.
func (l Level) Pairs() int {
	return l.Cards() / 2
}

// Validate checks that the level deals a positive, even number of cards.
func (l Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("dimensions %dx%d must be positive", l.Width, l.Height)
	}
	if l.Cards()%2 != 0 {
		return fmt.Errorf("dimensions %dx%d give an odd card count", l.Width, l.Height)
	}
	return nil
}

// MovesConfig defines how many attempts a level allows.
type MovesConfig struct {
	PerPair float64 `yaml:"per_pair" toml:"per_pair"` // Attempts granted per pair on the board
	Extra   int     `yaml:"extra" toml:"extra"`       // Flat allowance added on top
}

// Scoring defines points awarded for matches.
type Scoring struct {
	MatchPoints       int `yaml:"match_points" toml:"match_points"`                 // Base points per match
	StreakCap         int `yaml:"streak_cap" toml:"streak_cap"`                     // Highest streak multiplier
	LevelBonusPerMove int `yaml:"level_bonus_per_move" toml:"level_bonus_per_move"` // Bonus per unused move on completion
}

// QuickMatchConfig defines the quick-match window.
// The window is measured from the start of the current level, not the session.
type QuickMatchConfig struct {
	ThresholdSeconds float64 `yaml:"threshold_seconds" toml:"threshold_seconds"`
}

// AchievementsConfig defines achievement persistence settings.
type AchievementsConfig struct {
	StorageKey string `yaml:"storage_key" toml:"storage_key"`
}

// Validate reports every invalid level in the table.
func (c Config) Validate() error {
	if len(c.Levels) == 0 {
		return errors.New("config: no levels configured")
	}
	var errs []error
	for i, lvl := range c.Levels {
		if err := lvl.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("config: level %d: %w", i+1, err))
		}
	}
	if c.Scoring.StreakCap < 1 {
		errs = append(errs, fmt.Errorf("config: streak_cap %d must be at least 1", c.Scoring.StreakCap))
	}
	if c.Moves.PerPair < 1 {
		errs = append(errs, fmt.Errorf("config: moves.per_pair %.2f must be at least 1", c.Moves.PerPair))
	}
	return errors.Join(errs...)
}

// LevelCount returns the number of configured levels.
func (c Config) LevelCount() int {
	return len(c.Levels)
}

// GetLevel returns the level with the given 1-based number.
// The second result is false when the number is out of range.
func (c Config) GetLevel(number int) (Level, bool) {
	if number < 1 || number > len(c.Levels) {
		return Level{}, false
	}
	return c.Levels[number-1], true
}

// withDefaults fills zero values left out of a partial config file.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if len(c.Levels) == 0 {
		c.Levels = def.Levels
	}
	if c.Moves.PerPair == 0 {
		c.Moves = def.Moves
	}
	if c.Scoring.MatchPoints == 0 {
		c.Scoring.MatchPoints = def.Scoring.MatchPoints
	}
	if c.Scoring.StreakCap == 0 {
		c.Scoring.StreakCap = def.Scoring.StreakCap
	}
	if c.QuickMatch.ThresholdSeconds == 0 {
		c.QuickMatch = def.QuickMatch
	}
	if c.Achievements.StorageKey == "" {
		c.Achievements = def.Achievements
	}
	return c
}
