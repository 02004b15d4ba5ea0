package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Frames per second
	Seed     int64  // RNG seed for cue selection; 0 means time-based
	LevelID  string // Level to start on; empty means the first level
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score    int    // Moves used on the current level
	GameOver bool   // Whether the last level has been won
	Paused   bool   // Whether the game is paused
	LevelID  string // Current level
	Won      bool   // Whether the current level is solved
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State GameState
	// Completed is set on the tick a level becomes solved.
	Completed *Completion
}

// Completion records a solved level.
type Completion struct {
	LevelID  string
	Category string
	Moves    int
}
