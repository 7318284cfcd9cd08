// Package flipmatch implements the FlipMatch level progression, scoring and
// board logic. It has no rendering or storage dependencies.
package flipmatch

import (
	"fmt"
	"time"

	"github.com/vovakirdan/flipmatch/internal/config"
	"github.com/vovakirdan/flipmatch/internal/core"
	"github.com/vovakirdan/flipmatch/internal/stats"
)

// Card identifies one flipped card in a match attempt.
type Card struct {
	Pos    core.Pos
	Symbol int // Cards with equal symbols form a pair
}

// Attempt is the outcome of a recorded match attempt.
type Attempt struct {
	Matched       bool
	Points        int
	QuickMatch    bool
	LevelComplete bool
	GameOver      bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithClock overrides the time source used for level timing.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// Manager owns the level sequence, scoring, move budgets and streaks.
// All methods are meant to be called from a single goroutine.
type Manager struct {
	rules Rules
	now   func() time.Time
	state State

	level  int // 1-based
	width  int
	height int
	budget int

	// Per-level counters
	moves        int
	mismatches   int
	levelMatches int
	levelStart   time.Time
	levelTime    time.Duration

	// Session counters
	totalMatches    int
	totalScore      int
	streak          int
	maxStreak       int
	quickMatches    int
	levelsCompleted int
}

// NewManager creates a manager positioned at level 1 in StateNotStarted.
func NewManager(rules Rules, opts ...ManagerOption) *Manager {
	m := &Manager{
		rules: rules,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.ResetGame()
	return m
}

// State returns the current phase of the state machine.
func (m *Manager) State() State {
	return m.state
}

// Level returns the current level number, 1-based.
func (m *Manager) Level() int {
	return m.level
}

// LevelCount returns the number of configured levels.
func (m *Manager) LevelCount() int {
	return len(m.rules.Levels)
}

// Rules returns the rules the manager plays by.
func (m *Manager) Rules() Rules {
	return m.rules
}

// CurrentLevelConfig returns the configured grid for the current level.
func (m *Manager) CurrentLevelConfig() config.Level {
	if m.level < 1 || m.level > len(m.rules.Levels) {
		return config.Level{}
	}
	return m.rules.Levels[m.level-1]
}

// StartLevel deals a width x height level: per-level counters and the
// streak are reset and the manager moves to StateInProgress.
// It may be used to restart the current level at any time before the
// game is complete.
func (m *Manager) StartLevel(width, height int) error {
	if m.state == StateGameComplete {
		return &InvalidStateError{Op: "start level", State: m.state}
	}
	lvl := config.Level{Width: width, Height: height}
	if err := lvl.Validate(); err != nil {
		return &ConfigurationError{Width: width, Height: height, Err: err}
	}

	m.width = width
	m.height = height
	m.budget = m.rules.MovesBudget(width, height)
	m.moves = 0
	m.mismatches = 0
	m.levelMatches = 0
	m.streak = 0
	m.levelTime = 0
	m.levelStart = m.now()
	m.state = StateInProgress
	return nil
}

// StartCurrentLevel starts the current level with its configured dimensions.
func (m *Manager) StartCurrentLevel() error {
	lvl := m.CurrentLevelConfig()
	return m.StartLevel(lvl.Width, lvl.Height)
}

// RecordMatchAttempt records one pair-flip. Matching cards advance the
// streak and score; a mismatch resets the streak. The attempt that resolves
// the last pair completes the level; an attempt that overdraws the move
// budget without clearing the level ends the game.
func (m *Manager) RecordMatchAttempt(a, b Card) (Attempt, error) {
	if m.state != StateInProgress {
		return Attempt{}, &InvalidStateError{Op: "record match attempt", State: m.state}
	}
	if a.Pos == b.Pos {
		return Attempt{}, fmt.Errorf("%w: card %v flipped twice", ErrInvalidAttempt, a.Pos)
	}

	m.refreshLevelTime()
	m.moves++

	var res Attempt
	if a.Symbol == b.Symbol {
		res.Matched = true
		m.totalMatches++
		m.levelMatches++
		m.streak++
		if m.streak > m.maxStreak {
			m.maxStreak = m.streak
		}
		if m.levelTime <= m.rules.QuickMatchThreshold {
			m.quickMatches++
			res.QuickMatch = true
		}
		res.Points = Points(m.streak, m.rules.Scoring)
		m.totalScore += res.Points

		if m.levelMatches >= m.pairs() {
			m.completeLevel()
			res.LevelComplete = true
			return res, nil
		}
	} else {
		m.mismatches++
		m.streak = 0
	}

	if m.remainingMoves() < 0 {
		m.state = StateGameOver
		res.GameOver = true
	}
	return res, nil
}

// completeLevel freezes the level clock, awards the unused-move bonus and
// moves to StateLevelComplete.
func (m *Manager) completeLevel() {
	m.levelTime = m.now().Sub(m.levelStart)
	m.levelsCompleted++
	if remaining := m.remainingMoves(); remaining > 0 {
		m.totalScore += remaining * m.rules.Scoring.LevelBonusPerMove
	}
	m.state = StateLevelComplete
}

// IsGameOver reports whether the move budget was overdrawn on an unfinished level.
func (m *Manager) IsGameOver() bool {
	if m.state == StateGameOver {
		return true
	}
	return m.state == StateInProgress && PollGameOver(m.Stats())
}

// PollGameOver is the pure game-over predicate over a snapshot.
func PollGameOver(s stats.Snapshot) bool {
	return s.RemainingMoves < 0 && !s.LevelComplete
}

// Tick is the periodic poll driven by an external scheduler. It refreshes
// the level clock and moves an overdrawn level to StateGameOver. Calling it
// repeatedly without intervening attempts has no further effect.
func (m *Manager) Tick() bool {
	if m.state != StateInProgress {
		return m.state == StateGameOver
	}
	m.refreshLevelTime()
	if PollGameOver(m.Stats()) {
		m.state = StateGameOver
	}
	return m.state == StateGameOver
}

// CanAdvanceLevel reports whether a level follows the current one.
func (m *Manager) CanAdvanceLevel() bool {
	return m.level < len(m.rules.Levels)
}

// AdvanceLevel moves to the next level after a level was completed.
// On the final level it returns ErrFinalLevel and changes nothing.
func (m *Manager) AdvanceLevel() error {
	if m.state != StateLevelComplete {
		return &InvalidStateError{Op: "advance level", State: m.state}
	}
	if !m.CanAdvanceLevel() {
		return ErrFinalLevel
	}
	m.level++
	lvl := m.CurrentLevelConfig()
	m.width = lvl.Width
	m.height = lvl.Height
	m.budget = m.rules.MovesBudget(lvl.Width, lvl.Height)
	m.moves = 0
	m.mismatches = 0
	m.levelMatches = 0
	m.levelTime = 0
	m.state = StateNotStarted
	return nil
}

// CompleteGame marks the run finished after the final level was cleared.
func (m *Manager) CompleteGame() error {
	if m.state != StateLevelComplete {
		return &InvalidStateError{Op: "complete game", State: m.state}
	}
	if m.CanAdvanceLevel() {
		return &InvalidStateError{Op: "complete game", State: m.state, Reason: "levels remain"}
	}
	m.state = StateGameComplete
	return nil
}

// Stop ends the level in progress. Further attempts fail with
// InvalidStateError until a level is started again.
func (m *Manager) Stop() error {
	if m.state != StateInProgress {
		return &InvalidStateError{Op: "stop", State: m.state}
	}
	m.refreshLevelTime()
	m.state = StateStopped
	return nil
}

// ResetGame returns to level 1 in StateNotStarted and zeroes every counter.
func (m *Manager) ResetGame() {
	m.state = StateNotStarted
	m.level = 1
	lvl := m.CurrentLevelConfig()
	m.width = lvl.Width
	m.height = lvl.Height
	m.budget = m.rules.MovesBudget(lvl.Width, lvl.Height)
	m.moves = 0
	m.mismatches = 0
	m.levelMatches = 0
	m.levelStart = time.Time{}
	m.levelTime = 0
	m.totalMatches = 0
	m.totalScore = 0
	m.streak = 0
	m.maxStreak = 0
	m.quickMatches = 0
	m.levelsCompleted = 0
}

// Stats returns a copy of the current statistics.
func (m *Manager) Stats() stats.Snapshot {
	complete := m.state == StateLevelComplete || m.state == StateGameComplete
	return stats.Snapshot{
		Level:                    m.level,
		TotalLevels:              len(m.rules.Levels),
		Moves:                    m.moves,
		RemainingMoves:           m.remainingMoves(),
		Mismatches:               m.mismatches,
		TotalCards:               m.width * m.height,
		TotalMatches:             m.totalMatches,
		TotalScore:               m.totalScore,
		Streak:                   m.streak,
		MaxStreak:                m.maxStreak,
		QuickMatches:             m.quickMatches,
		LevelsCompletedInSession: m.levelsCompleted,
		LevelTime:                m.levelTime,
		LevelComplete:            complete,
	}
}

// Budget returns the move budget of the current level.
func (m *Manager) Budget() int {
	return m.budget
}

func (m *Manager) remainingMoves() int {
	return m.budget - m.moves
}

func (m *Manager) pairs() int {
	return (m.width * m.height) / 2
}

func (m *Manager) refreshLevelTime() {
	if m.state == StateInProgress {
		m.levelTime = m.now().Sub(m.levelStart)
	}
}
