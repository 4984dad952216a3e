package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/logical-psycho/internal/engine"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	embedded, err := parse(defaultPsychoYAML)
	if err != nil {
		t.Fatalf("embedded config does not parse: %v", err)
	}
	def := DefaultConfig()

	if embedded.Grid != def.Grid || embedded.Movement != def.Movement || embedded.Enemy != def.Enemy {
		t.Errorf("embedded config %+v differs from DefaultConfig %+v", embedded, def)
	}
	if embedded.Difficulty.Preset != DifficultyNormal {
		t.Errorf("preset = %q, expected normal", embedded.Difficulty.Preset)
	}
}

func TestDefaultOptionsMatchEngine(t *testing.T) {
	got := DefaultConfig().Options()
	want := engine.DefaultOptions()
	if got != want {
		t.Errorf("Options() = %+v, expected %+v", got, want)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	body := "movement:\n  tick_rate: 30\ndifficulty:\n  preset: hard\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, src, err := LoadWithSource(path)
	if err != nil {
		t.Fatalf("LoadWithSource: %v", err)
	}
	if src != path {
		t.Errorf("source = %q, expected %q", src, path)
	}
	if cfg.Movement.TickRate != 30 {
		t.Errorf("tick rate = %d, expected 30", cfg.Movement.TickRate)
	}
	// Omitted keys keep defaults.
	if cfg.Grid.TileLength != 80 || cfg.Movement.TargetFrames != 10 {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if got := cfg.Options().FrequencyScale; got != 1.25 {
		t.Errorf("FrequencyScale = %g, expected 1.25", got)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "grid: [", "failed to parse"},
		{"indivisible step", "grid:\n  tile_length: 75\n", "not divisible"},
		{"unknown preset", "difficulty:\n  preset: nightmare\n", "unknown difficulty"},
		{"unknown style", "enemy:\n  default_style: teleport\n", "default_style"},
		{"zero frequency", "enemy:\n  default_frequency: 0\n", "default_frequency"},
		{"nan frequency", "enemy:\n  default_frequency: .nan\n", "default_frequency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".psycho", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("difficulty:\n  preset: easy\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, src, err := LoadWithSource("")
	if err != nil {
		t.Fatalf("LoadWithSource: %v", err)
	}
	if !strings.HasPrefix(src, home) {
		t.Errorf("source = %q, expected the user config", src)
	}
	if cfg.Difficulty.Preset != DifficultyEasy {
		t.Errorf("preset = %q, expected easy", cfg.Difficulty.Preset)
	}
}

func TestLoadBrokenUserConfigFallsBack(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".psycho", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("grid: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, src, err := LoadWithSource("")
	if err != nil {
		t.Fatalf("LoadWithSource: %v", err)
	}
	if src != "embedded" {
		t.Errorf("source = %q, expected embedded", src)
	}
	if cfg.Grid.TileLength != 80 {
		t.Errorf("tile length = %d", cfg.Grid.TileLength)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in    string
		want  DifficultyPreset
		scale float64
	}{
		{"", DifficultyNormal, 1},
		{"easy", DifficultyEasy, 0.75},
		{"Normal", DifficultyNormal, 1},
		{" HARD ", DifficultyHard, 1.25},
		{"fixed", DifficultyFixed, 1},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if err != nil {
			t.Errorf("ParsePreset(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tt.in, got, tt.want)
		}
		if s := FrequencyScaleForPreset(got); s != tt.scale {
			t.Errorf("scale(%q) = %g, expected %g", got, s, tt.scale)
		}
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset(insane) should fail")
	}
}

func TestLevelDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enemy.DefaultFrequency = 5
	cfg.Enemy.DefaultStyle = "burst"

	d := cfg.LevelDefaults()
	if d.Frequency != 5 || d.Style != engine.StyleBurst {
		t.Errorf("LevelDefaults() = %+v", d)
	}
}
