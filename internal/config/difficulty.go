package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // Keep the file's moves.per_pair untouched
)

// ParseDifficulty parses a preset name. Empty input yields DifficultyNormal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// PerPairForPreset returns the moves granted per pair for a preset.
// The second result is false for DifficultyFixed.
func PerPairForPreset(preset DifficultyPreset) (float64, bool) {
	switch preset {
	case DifficultyEasy:
		return 2.5, true
	case DifficultyNormal:
		return 2.0, true
	case DifficultyHard:
		return 1.5, true
	default:
		return 0, false
	}
}

// ApplyPreset modifies the move budget based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Difficulty = preset
	if perPair, ok := PerPairForPreset(preset); ok {
		cfg.Moves.PerPair = perPair
	}
}

// Budget returns the number of attempts allowed on a width x height grid.
// It scales with the pair count so larger levels are not impossibly tight,
// and never drops below the optimal number of attempts.
func (m MovesConfig) Budget(width, height int) int {
	pairs := (width * height) / 2
	if pairs <= 0 {
		return 0
	}
	perPair := math.Max(m.PerPair, 1.0)
	budget := int(math.Ceil(float64(pairs)*perPair)) + m.Extra
	if budget < pairs {
		budget = pairs
	}
	return budget
}
