package config

import (
	_ "embed"
)

//go:embed defaults/flipmatch.yaml
var defaultYAML []byte

// DefaultStorageKey is the durable-store key holding unlocked achievements.
const DefaultStorageKey = "flipmatch_achievements"

// DefaultConfig returns the built-in FlipMatch configuration.
// It mirrors defaults/flipmatch.yaml and is used when the embed fails to parse.
func DefaultConfig() Config {
	return Config{
		Levels: []Level{
			{Width: 2, Height: 2},
			{Width: 3, Height: 2},
			{Width: 4, Height: 2},
			{Width: 4, Height: 3},
			{Width: 4, Height: 4},
			{Width: 5, Height: 4},
			{Width: 6, Height: 4},
			{Width: 6, Height: 5},
			{Width: 6, Height: 6},
			{Width: 7, Height: 6},
			{Width: 8, Height: 6},
		},
		Moves: MovesConfig{
			PerPair: 2.0,
			Extra:   2,
		},
		Scoring: Scoring{
			MatchPoints:       10,
			StreakCap:         5,
			LevelBonusPerMove: 5,
		},
		QuickMatch: QuickMatchConfig{
			ThresholdSeconds: 10,
		},
		Achievements: AchievementsConfig{
			StorageKey: DefaultStorageKey,
		},
		Difficulty: DifficultyNormal,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
