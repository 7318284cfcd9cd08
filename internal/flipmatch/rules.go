package flipmatch

import (
	"time"

	"github.com/vovakirdan/flipmatch/internal/config"
)

// Rules is the configuration table the manager plays by.
type Rules struct {
	Levels              []config.Level
	Moves               config.MovesConfig
	Scoring             config.Scoring
	QuickMatchThreshold time.Duration
}

// RulesFromConfig builds Rules from a loaded configuration.
func RulesFromConfig(cfg config.Config) Rules {
	return Rules{
		Levels:              cfg.Levels,
		Moves:               cfg.Moves,
		Scoring:             cfg.Scoring,
		QuickMatchThreshold: time.Duration(cfg.QuickMatch.ThresholdSeconds * float64(time.Second)),
	}
}

// DefaultRules returns the rules of the built-in configuration.
func DefaultRules() Rules {
	return RulesFromConfig(config.DefaultConfig())
}

// MovesBudget returns the attempts allowed on a width x height grid.
func (r Rules) MovesBudget(width, height int) int {
	return r.Moves.Budget(width, height)
}

// Points returns the score for a match made at the given streak.
// The streak multiplies the base points up to the configured cap.
func Points(streak int, s config.Scoring) int {
	multiplier := min(streak, s.StreakCap)
	if multiplier < 1 {
		multiplier = 1
	}
	return s.MatchPoints * multiplier
}
