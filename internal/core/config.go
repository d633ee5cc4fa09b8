package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Frames per second driven by the platform (default 60)
	Seed     int64  // RNG seed for deterministic gameplay
	Player   string // Name results are recorded under
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Player:   "player",
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score        int    // Current points
	CorrectWords int    // Target words caught
	Difficulty   string // Active difficulty name
	Theme        string // Active word theme
	GameOver     bool   // Whether the round has ended
	Paused       bool   // Whether the game is paused
}

// StepResult is returned by Game.Step() after each platform frame.
type StepResult struct {
	State GameState
}
