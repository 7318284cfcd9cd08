package flipmatch

import (
	"errors"
	"fmt"
)

var (
	// ErrFinalLevel is returned by AdvanceLevel on the last configured level.
	// Callers treat it as the cue to complete the game.
	ErrFinalLevel = errors.New("flipmatch: already at final level")

	// ErrInvalidAttempt is returned when a match attempt names the same card twice.
	ErrInvalidAttempt = errors.New("flipmatch: invalid match attempt")
)

// InvalidStateError reports an operation whose state precondition was violated.
// The operation never mutates state when it returns this error.
type InvalidStateError struct {
	Op     string
	State  State
	Reason string
}

func (e *InvalidStateError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("flipmatch: cannot %s in state %s: %s", e.Op, e.State, e.Reason)
	}
	return fmt.Sprintf("flipmatch: cannot %s in state %s", e.Op, e.State)
}

// ConfigurationError reports grid dimensions that cannot be dealt.
type ConfigurationError struct {
	Width  int
	Height int
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("flipmatch: invalid level %dx%d: %v", e.Width, e.Height, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
