// Package config provides YAML-based configuration loading and difficulty
// presets for the maze engine.
package config

// PsychoConfig contains all tunable simulation constants.
type PsychoConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Movement   MovementConfig   `yaml:"movement"`
	Animation  AnimationConfig  `yaml:"animation"`
	Enemy      EnemyConfig      `yaml:"enemy"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig defines the tile grid.
type GridConfig struct {
	TileLength int `yaml:"tile_length"` // Pixels per tile edge
}

// MovementConfig defines slide timing.
type MovementConfig struct {
	TargetFrames int `yaml:"target_frames"` // Ticks per one-tile slide
	TickRate     int `yaml:"tick_rate"`
}

// AnimationConfig defines sprite animation speeds.
type AnimationConfig struct {
	IdleRate   float64 `yaml:"idle_rate"`
	GoalRate   float64 `yaml:"goal_rate"`
	GoalFrames int     `yaml:"goal_frames"`
	LossRate   float64 `yaml:"loss_rate"`
	LossFrames int     `yaml:"loss_frames"`
}

// EnemyConfig defines defaults for dynamic enemies.
type EnemyConfig struct {
	DefaultFrequency float64 `yaml:"default_frequency"` // Decisions per second
	DefaultStyle     string  `yaml:"default_style"`
	BurstLength      int     `yaml:"burst_length"`
	BurstStepGap     int     `yaml:"burst_step_gap"`
	BurstRest        int     `yaml:"burst_rest"`
}

// DifficultyConfig selects a preset.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}
