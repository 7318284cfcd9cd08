// Package stats defines the statistics snapshot shared by the level manager
// and the achievement engine. Neither side depends on the other's internals,
// only on this shape.
package stats

import "time"

// Snapshot is a point-in-time, read-only copy of the session statistics.
// It is a value type; mutating a copy never affects game state.
type Snapshot struct {
	Level       int // Current level, 1-based
	TotalLevels int // Number of configured levels

	Moves          int // Attempts made in the current level
	RemainingMoves int // Move budget minus Moves, may be negative
	Mismatches     int // Failed attempts in the current level
	TotalCards     int // width * height of the current level

	TotalMatches int // Cumulative across the session
	TotalScore   int // Cumulative across the session

	Streak       int // Consecutive matches without a mismatch
	MaxStreak    int // Session high-water mark of Streak
	QuickMatches int // Matches made within the quick-match threshold

	LevelsCompletedInSession int
	LevelTime                time.Duration // Elapsed time of the current level attempt
	LevelComplete            bool          // Set when the snapshot describes a finished level

	// AchievementCount is injected by the achievement engine right before
	// evaluation. It counts unlocks made before the current check.
	AchievementCount int
}

// OptimalMoves is the minimum number of attempts needed to clear the level.
func (s Snapshot) OptimalMoves() int {
	return s.TotalCards / 2
}

// IsFinalLevel reports whether the snapshot describes the last configured level.
func (s Snapshot) IsFinalLevel() bool {
	return s.TotalLevels > 0 && s.Level >= s.TotalLevels
}
