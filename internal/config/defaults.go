package config

import (
	_ "embed"
)

//go:embed defaults/psycho.yaml
var defaultPsychoYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() PsychoConfig {
	return PsychoConfig{
		Grid: GridConfig{
			TileLength: 80,
		},
		Movement: MovementConfig{
			TargetFrames: 10,
			TickRate:     60,
		},
		Animation: AnimationConfig{
			IdleRate:   60.0 / 1100.0,
			GoalRate:   0.1,
			GoalFrames: 4,
			LossRate:   0.2,
			LossFrames: 4,
		},
		Enemy: EnemyConfig{
			DefaultFrequency: 3,
			DefaultStyle:     "seek",
			BurstLength:      3,
			BurstStepGap:     2,
			BurstRest:        60,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
	}
}
