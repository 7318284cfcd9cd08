package flipmatch

// State is a phase of the level state machine.
type State int

const (
	StateNotStarted    State = iota // Level selected but not dealt yet
	StateInProgress                 // Accepting match attempts
	StateLevelComplete              // Every pair of the level resolved
	StateGameOver                   // Move budget overdrawn before the level was cleared
	StateGameComplete               // Final level cleared
	StateStopped                    // Run stopped by the player
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateLevelComplete:
		return "level_complete"
	case StateGameOver:
		return "game_over"
	case StateGameComplete:
		return "game_complete"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run ended and no attempts are accepted until
// a level is started again.
func (s State) Terminal() bool {
	return s == StateGameOver || s == StateGameComplete || s == StateStopped
}
