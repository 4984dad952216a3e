package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic enemy decisions
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a level run as seen by the platform.
type GameState struct {
	LevelID string // Level being played
	Ticks   int    // Ticks spent running the current attempt chain
	Deaths  int    // Restarts caused by enemy collisions
	Won     bool   // Player reached the goal
	Lost    bool   // Loss animation playing
	Paused  bool   // Level torn down into a pause snapshot
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Paused is set on the tick the level was paused.
	Paused bool
	// Resumed is set on the tick the level was rebuilt from its snapshot.
	Resumed bool
	// Completed is set on the tick the goal was reached.
	Completed bool
	// Err reports a paused run that could not be resumed. The run stays
	// paused with its snapshot.
	Err error
}
