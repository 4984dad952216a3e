// Package registry holds the level catalog and the Game contract the
// platform drives. The catalog is an explicit, lock-protected object rather
// than package state, since the level watcher updates it while sessions read.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/logical-psycho/internal/core"
	"github.com/vovakirdan/logical-psycho/internal/levels"
)

// Game is what the platform runs. Implementations contain pure logic with
// no Bubble Tea dependency; the platform handles input mapping, timing and
// rendering.
type Game interface {
	// ID returns the level identifier (e.g. "level-03").
	// Used for CLI commands and progress storage.
	ID() string

	// Title returns a human-readable level name.
	Title() string

	// Reset rebuilds the level from scratch.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current run state.
	State() core.GameState
}

// LevelInfo contains catalog metadata about a level.
type LevelInfo struct {
	ID     string
	Title  string
	Order  int
	Source string // "builtin" or the file the level was loaded from
}

// ErrUnknownLevel is returned for IDs not in the catalog.
var ErrUnknownLevel = errors.New("registry: unknown level")

// Catalog is a thread-safe set of levels keyed by ID.
type Catalog struct {
	mu      sync.RWMutex
	levels  map[string]levels.Level
	byPath  map[string]string // file path -> level ID
	version uint64
}

// NewCatalog creates a catalog holding the given levels.
func NewCatalog(initial ...levels.Level) *Catalog {
	c := &Catalog{
		levels: make(map[string]levels.Level),
		byPath: make(map[string]string),
	}
	for _, l := range initial {
		c.Put(l)
	}
	return c
}

// Register adds a level. It fails if the ID is already present.
func (c *Catalog) Register(l levels.Level) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.levels[l.ID]; exists {
		return fmt.Errorf("registry: level %q already registered", l.ID)
	}
	c.putLocked(l)
	return nil
}

// Put adds or replaces a level.
func (c *Catalog) Put(l levels.Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.putLocked(l)
}

func (c *Catalog) putLocked(l levels.Level) {
	if l.FilePath != "" {
		// A file renamed its level: drop the old ID.
		if old, ok := c.byPath[l.FilePath]; ok && old != l.ID {
			delete(c.levels, old)
		}
		c.byPath[l.FilePath] = l.ID
	}
	c.levels[l.ID] = l
	c.version++
}

// Remove deletes a level by ID.
func (c *Catalog) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.levels[id]
	if !ok {
		return false
	}
	delete(c.levels, id)
	if l.FilePath != "" {
		delete(c.byPath, l.FilePath)
	}
	c.version++
	return true
}

// RemovePath deletes the level loaded from path, if any, and returns its ID.
func (c *Catalog) RemovePath(path string) (string, bool) {
	c.mu.RLock()
	id, ok := c.byPath[path]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	return id, c.Remove(id)
}

// Get returns a level by ID.
func (c *Catalog) Get(id string) (levels.Level, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	l, ok := c.levels[id]
	if !ok {
		return levels.Level{}, fmt.Errorf("%w %q", ErrUnknownLevel, id)
	}
	return l, nil
}

// Exists checks if a level with the given ID is registered.
func (c *Catalog) Exists(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.levels[id]
	return ok
}

// Levels returns every level in play order.
func (c *Catalog) Levels() []levels.Level {
	c.mu.RLock()
	out := make([]levels.Level, 0, len(c.levels))
	for _, l := range c.levels {
		out = append(out, l)
	}
	c.mu.RUnlock()

	levels.SortLevels(out)
	return out
}

// List returns information about all levels in play order.
func (c *Catalog) List() []LevelInfo {
	all := c.Levels()
	result := make([]LevelInfo, 0, len(all))
	for _, l := range all {
		src := "builtin"
		if l.FilePath != "" {
			src = l.FilePath
		}
		result = append(result, LevelInfo{ID: l.ID, Title: l.Name, Order: l.Order, Source: src})
	}
	return result
}

// First returns the ID of the first level in play order.
func (c *Catalog) First() (string, bool) {
	all := c.List()
	if len(all) == 0 {
		return "", false
	}
	return all[0].ID, true
}

// Next returns the level after id in play order.
func (c *Catalog) Next(id string) (string, bool) {
	all := c.List()
	idx := -1
	for i, info := range all {
		if info.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || idx+1 >= len(all) {
		return "", false
	}
	return all[idx+1].ID, true
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.levels)
}

// Version increases on every change; readers compare it to notice reloads.
func (c *Catalog) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Follow applies changed level files to the catalog until ctx is done or
// events is closed. A file that no longer exists is removed; a file that
// fails to load keeps its previous version.
func (c *Catalog) Follow(ctx context.Context, events <-chan string, load func(path string) (levels.Level, error), logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-events:
			if !ok {
				return
			}
			c.apply(path, load, logger)
		}
	}
}

func (c *Catalog) apply(path string, load func(string) (levels.Level, error), logger *log.Logger) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if id, ok := c.RemovePath(path); ok {
			logger.Info("level removed", "id", id, "path", path)
		}
		return
	}

	l, err := load(path)
	if err != nil {
		logger.Warn("level reload failed", "path", path, "error", err)
		return
	}
	c.Put(l)
	logger.Info("level reloaded", "id", l.ID, "path", path)
}
