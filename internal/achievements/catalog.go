package achievements

import (
	"time"

	"github.com/vovakirdan/flipmatch/internal/stats"
)

// Catalog IDs referenced outside the catalog.
const (
	IDFirstMatch   = "first_match"
	IDStreakMaster = "streak_master"
	IDCollector    = "collector"
)

const (
	speedDemonLimit   = 30 * time.Second
	streakMasterMin   = 5
	marathonLevels    = 5
	comebackMaxMoves  = 2
	quickThinkerMin   = 3
	collectorRequired = 5
)

// DefaultCatalog returns the built-in achievements in display order.
func DefaultCatalog() []Achievement {
	return []Achievement{
		{
			ID: IDFirstMatch, Name: "First Steps",
			Description: "Find your first match", Icon: "🎯",
			Condition: ConditionFunc(func(s stats.Snapshot) bool { return s.TotalMatches >= 1 }),
		},
		{
			ID: "speed_demon", Name: "Speed Demon",
			Description: "Complete a level in under 30 seconds", Icon: "⚡",
			Condition: ConditionFunc(func(s stats.Snapshot) bool {
				return s.LevelComplete && s.LevelTime <= speedDemonLimit
			}),
		},
		{
			ID: "perfectionist", Name: "Perfectionist",
			Description: "Complete a level without any mistakes", Icon: "💎",
			Condition: ConditionFunc(func(s stats.Snapshot) bool {
				return s.LevelComplete && s.Mismatches == 0 && s.Level >= 3
			}),
		},
		{
			ID: IDStreakMaster, Name: "Streak Master",
			Description: "Get a 5-match streak", Icon: "🔥",
			Condition: ConditionFunc(func(s stats.Snapshot) bool { return s.MaxStreak >= streakMasterMin }),
		},
		{
			ID: "level_5", Name: "Intermediate",
			Description: "Reach level 5", Icon: "🎓",
			Condition: ConditionFunc(func(s stats.Snapshot) bool { return s.Level >= 5 }),
		},
		{
			ID: "level_10", Name: "Expert",
			Description: "Reach level 10", Icon: "👑",
			Condition: ConditionFunc(func(s stats.Snapshot) bool { return s.Level >= 10 }),
		},
		{
			ID: "master", Name: "Master",
			Description: "Complete all levels", Icon: "🏆",
			Condition: ConditionFunc(func(s stats.Snapshot) bool {
				return s.LevelComplete && s.IsFinalLevel()
			}),
		},
		{
			ID: "efficient", Name: "Efficient",
			Description: "Complete a level using minimum moves", Icon: "🎯",
			Condition: ConditionFunc(func(s stats.Snapshot) bool {
				return s.LevelComplete && s.Moves <= s.OptimalMoves() && s.Level >= 4
			}),
		},
		{
			ID: "marathon", Name: "Marathon",
			Description: "Complete 5 levels in one session", Icon: "🏃",
			Condition: ConditionFunc(func(s stats.Snapshot) bool {
				return s.LevelsCompletedInSession >= marathonLevels
			}),
		},
		{
			ID: "comeback", Name: "Comeback",
			Description: "Complete a level with less than 3 moves remaining", Icon: "💪",
			Condition: ConditionFunc(func(s stats.Snapshot) bool {
				return s.LevelComplete && s.RemainingMoves >= 0 && s.RemainingMoves <= comebackMaxMoves
			}),
		},
		{
			ID: "quick_thinker", Name: "Quick Thinker",
			Description: "Make 3 matches in under 10 seconds", Icon: "🧠",
			Condition: ConditionFunc(func(s stats.Snapshot) bool { return s.QuickMatches >= quickThinkerMin }),
		},
		{
			ID: IDCollector, Name: "Collector",
			Description: "Unlock 5 achievements", Icon: "🌟",
			Condition: ConditionFunc(func(s stats.Snapshot) bool { return s.AchievementCount >= collectorRequired }),
		},
	}
}
