package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/logical-psycho/internal/engine"
	"github.com/vovakirdan/logical-psycho/internal/levels"
)

// FileName is the config file looked up in each search directory.
const FileName = "psycho.yaml"

// Load loads the configuration.
// Search order: customPath -> ~/.psycho/configs/psycho.yaml -> ./configs/psycho.yaml -> embedded default
// Keys missing from a file keep their default values.
func Load(customPath string) (PsychoConfig, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports where the config came from.
func LoadWithSource(customPath string) (PsychoConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PsychoConfig{}, "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return PsychoConfig{}, "", fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then the local configs directory.
	// Unreadable or broken files there are skipped.
	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultPsychoYAML)
	if err != nil {
		return DefaultConfig(), "default", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

func parse(data []byte) (PsychoConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PsychoConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return PsychoConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".psycho", "configs", filename)
}

// Validate checks the config by converting it to engine options.
func (c PsychoConfig) Validate() error {
	if _, err := ParsePreset(string(c.Difficulty.Preset)); err != nil {
		return err
	}
	if _, err := engine.ParseStyle(c.Enemy.DefaultStyle); err != nil {
		return fmt.Errorf("config: enemy.default_style: %w", err)
	}
	if !(c.Enemy.DefaultFrequency > 0 && c.Enemy.DefaultFrequency <= levels.MaxFrequency) {
		return fmt.Errorf("config: enemy.default_frequency must be in (0, %d], got %g",
			levels.MaxFrequency, c.Enemy.DefaultFrequency)
	}
	if err := c.Options().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Options converts the config to engine options, with the difficulty
// preset folded into the frequency scale.
func (c PsychoConfig) Options() engine.Options {
	return engine.Options{
		TileLength:     c.Grid.TileLength,
		TargetFrames:   c.Movement.TargetFrames,
		TickRate:       c.Movement.TickRate,
		IdleAnimRate:   c.Animation.IdleRate,
		GoalAnimRate:   c.Animation.GoalRate,
		LossAnimRate:   c.Animation.LossRate,
		GoalFrames:     c.Animation.GoalFrames,
		LossFrames:     c.Animation.LossFrames,
		BurstLength:    c.Enemy.BurstLength,
		BurstStepGap:   c.Enemy.BurstStepGap,
		BurstRest:      c.Enemy.BurstRest,
		FrequencyScale: FrequencyScaleForPreset(c.Difficulty.Preset),
	}
}

// LevelDefaults returns the values used for omitted enemy fields in level files.
func (c PsychoConfig) LevelDefaults() levels.Defaults {
	d := levels.DefaultDefaults()
	if c.Enemy.DefaultFrequency > 0 {
		d.Frequency = c.Enemy.DefaultFrequency
	}
	if s, err := engine.ParseStyle(c.Enemy.DefaultStyle); err == nil {
		d.Style = s
	}
	return d
}
