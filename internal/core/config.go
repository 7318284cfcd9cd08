package core

// RuntimeConfig contains configuration passed to a game session at initialization.
// The platform uses this to adapt to screen size and for deterministic dealing.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Platform ticks per second (game-over polling runs once per second)
	Seed     int64 // RNG seed for deterministic card dealing
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 10,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the coarse status of a session.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Cumulative score
	Level    int  // Current level, 1-based
	GameOver bool // Moves exhausted, run stopped or all levels cleared
	Paused   bool // Waiting for the player (level cleared, not started)
}
