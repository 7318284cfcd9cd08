// Package achievements evaluates a fixed catalog of achievements against
// statistics snapshots and keeps the set of unlocks in a durable store.
package achievements

import (
	"time"

	"github.com/vovakirdan/flipmatch/internal/stats"
)

// Condition decides whether an achievement is earned for a snapshot.
type Condition interface {
	Evaluate(s stats.Snapshot) bool
}

// ConditionFunc adapts a plain function to Condition.
type ConditionFunc func(s stats.Snapshot) bool

// Evaluate calls f(s).
func (f ConditionFunc) Evaluate(s stats.Snapshot) bool {
	return f(s)
}

// Achievement describes a single unlockable goal.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Condition   Condition
}

// Status is a catalog entry annotated with its unlock state, for display.
type Status struct {
	Achievement
	Unlocked   bool
	UnlockedAt time.Time // Zero when locked
}

// Progress summarizes how much of the catalog is unlocked.
type Progress struct {
	Unlocked   int
	Total      int
	Percentage int // Rounded to the nearest integer
}
