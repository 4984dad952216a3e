// Package levels loads maze definitions: the YAML file format, load-time
// validation, the built-in level pack and a directory watcher for hot reload.
// This package depends on engine but engine does not depend on levels.
package levels

import (
	"github.com/vovakirdan/logical-psycho/internal/engine"
)

// Level is a validated level definition.
type Level struct {
	ID     string
	Name   string
	Order  int // Position in play order; unlock chains follow it
	Width  int
	Height int
	Layout engine.Layout

	FilePath string // Empty for built-in levels
}

// Movers returns how many entities a pause snapshot of this level holds.
func (l Level) Movers() int {
	return 1 + len(l.Layout.Dynamics)
}

// HasEnemies reports whether the level has any enemies at all.
func (l Level) HasEnemies() bool {
	return len(l.Layout.Statics) > 0 || len(l.Layout.Dynamics) > 0
}

// Defaults fills in omitted dynamic enemy fields.
type Defaults struct {
	Frequency float64
	Style     engine.Style
}

// DefaultDefaults returns frequency 3, seek.
func DefaultDefaults() Defaults {
	return Defaults{Frequency: 3, Style: engine.StyleSeek}
}
