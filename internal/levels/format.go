package levels

import (
	"fmt"

	"github.com/vovakirdan/logical-psycho/internal/engine"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Order       int           `yaml:"order"`
	Size        YAMLSize      `yaml:"size"`
	Player      []int         `yaml:"player"`
	Goal        []int         `yaml:"goal"`
	Walls       [][]int       `yaml:"walls,omitempty"`
	Lines       []YAMLLine    `yaml:"lines,omitempty"`
	Statics     [][]int       `yaml:"statics,omitempty"`
	StaticLines []YAMLLine    `yaml:"static_lines,omitempty"`
	Dynamics    []YAMLDynamic `yaml:"dynamics,omitempty"`
}

// YAMLSize represents grid dimensions in tiles.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLLine is an inclusive horizontal or vertical run of tiles.
type YAMLLine struct {
	From []int `yaml:"from"`
	To   []int `yaml:"to"`
}

// YAMLDynamic represents a moving enemy.
type YAMLDynamic struct {
	At        []int    `yaml:"at"`
	Style     string   `yaml:"style,omitempty"`
	Frequency *float64 `yaml:"frequency,omitempty"`
	Delay     int      `yaml:"delay,omitempty"`
	Axis      string   `yaml:"axis,omitempty"`
}

// ParseYAML parses and validates a YAML level file.
func ParseYAML(data []byte, d Defaults) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	level, err := yl.toLevel(d)
	if err != nil {
		return Level{}, err
	}
	if err := Validate(level); err != nil {
		return Level{}, err
	}
	return level, nil
}

func (yl YAMLLevel) toLevel(d Defaults) (Level, error) {
	level := Level{
		ID:     yl.ID,
		Name:   yl.Name,
		Order:  yl.Order,
		Width:  yl.Size.W,
		Height: yl.Size.H,
	}
	if level.Name == "" {
		level.Name = yl.ID
	}
	lay := &level.Layout
	lay.Cols, lay.Rows = yl.Size.W, yl.Size.H

	if yl.Player == nil {
		return Level{}, invalid(CodeMissingPlayer, "level %s has no player start", yl.ID)
	}
	if yl.Goal == nil {
		return Level{}, invalid(CodeMissingGoal, "level %s has no goal", yl.ID)
	}
	var err error
	if lay.Player, err = tile("player", yl.Player); err != nil {
		return Level{}, err
	}
	if lay.Goal, err = tile("goal", yl.Goal); err != nil {
		return Level{}, err
	}

	walls := newTileSet()
	for _, w := range yl.Walls {
		t, err := tile("wall", w)
		if err != nil {
			return Level{}, err
		}
		walls.add(t)
	}
	for _, ln := range yl.Lines {
		run, err := ln.tiles()
		if err != nil {
			return Level{}, err
		}
		walls.add(run...)
	}
	lay.Walls = walls.list

	statics := newTileSet()
	for _, s := range yl.Statics {
		t, err := tile("static enemy", s)
		if err != nil {
			return Level{}, err
		}
		statics.add(t)
	}
	for _, ln := range yl.StaticLines {
		run, err := ln.tiles()
		if err != nil {
			return Level{}, err
		}
		statics.add(run...)
	}
	lay.Statics = statics.list

	for i, yd := range yl.Dynamics {
		spec, err := yd.toSpec(d)
		if err != nil {
			return Level{}, fmt.Errorf("dynamic enemy %d: %w", i+1, err)
		}
		lay.Dynamics = append(lay.Dynamics, spec)
	}
	return level, nil
}

func (yd YAMLDynamic) toSpec(d Defaults) (engine.EnemySpec, error) {
	at, err := tile("dynamic enemy", yd.At)
	if err != nil {
		return engine.EnemySpec{}, err
	}

	style := d.Style
	if yd.Style != "" {
		if style, err = engine.ParseStyle(yd.Style); err != nil {
			return engine.EnemySpec{}, invalid(CodeUnknownStyle, "%v", err)
		}
	}
	freq := d.Frequency
	if yd.Frequency != nil {
		freq = *yd.Frequency
	}
	axis, err := engine.ParseAxis(yd.Axis)
	if err != nil {
		return engine.EnemySpec{}, invalid(CodeBadAxis, "%v", err)
	}

	return engine.EnemySpec{
		At:        at,
		Style:     style,
		Frequency: freq,
		Delay:     yd.Delay,
		Axis:      axis,
	}, nil
}

func (ln YAMLLine) tiles() ([]engine.Tile, error) {
	from, err := tile("line start", ln.From)
	if err != nil {
		return nil, err
	}
	to, err := tile("line end", ln.To)
	if err != nil {
		return nil, err
	}
	if from.X != to.X && from.Y != to.Y {
		return nil, invalid(CodeBadLine, "line (%d, %d)-(%d, %d) is diagonal", from.X, from.Y, to.X, to.Y)
	}

	dx, dy := sign(to.X-from.X), sign(to.Y-from.Y)
	var out []engine.Tile
	for t := from; ; t = engine.T(t.X+dx, t.Y+dy) {
		out = append(out, t)
		if t == to {
			break
		}
	}
	return out, nil
}

func tile(what string, xy []int) (engine.Tile, error) {
	if len(xy) != 2 {
		return engine.Tile{}, invalid(CodeBadCoord, "%s must be [x, y], got %v", what, xy)
	}
	return engine.T(xy[0], xy[1]), nil
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// tileSet keeps first-seen order and drops duplicates, so overlapping
// border lines do not produce stacked walls.
type tileSet struct {
	seen map[engine.Tile]bool
	list []engine.Tile
}

func newTileSet() *tileSet {
	return &tileSet{seen: make(map[engine.Tile]bool)}
}

func (s *tileSet) add(ts ...engine.Tile) {
	for _, t := range ts {
		if s.seen[t] {
			continue
		}
		s.seen[t] = true
		s.list = append(s.list, t)
	}
}

// MarshalLevel encodes a level back into its YAML form, walls listed
// tile by tile.
func MarshalLevel(l Level) ([]byte, error) {
	yl := YAMLLevel{
		ID:     l.ID,
		Name:   l.Name,
		Order:  l.Order,
		Size:   YAMLSize{W: l.Width, H: l.Height},
		Player: []int{l.Layout.Player.X, l.Layout.Player.Y},
		Goal:   []int{l.Layout.Goal.X, l.Layout.Goal.Y},
	}
	for _, w := range l.Layout.Walls {
		yl.Walls = append(yl.Walls, []int{w.X, w.Y})
	}
	for _, s := range l.Layout.Statics {
		yl.Statics = append(yl.Statics, []int{s.X, s.Y})
	}
	for _, d := range l.Layout.Dynamics {
		freq := d.Frequency
		yd := YAMLDynamic{
			At:        []int{d.At.X, d.At.Y},
			Style:     d.Style.String(),
			Frequency: &freq,
			Delay:     d.Delay,
		}
		if d.Axis != engine.AxisAny {
			yd.Axis = d.Axis.String()
		}
		yl.Dynamics = append(yl.Dynamics, yd)
	}
	return yaml.Marshal(yl)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
