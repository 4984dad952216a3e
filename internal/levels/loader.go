package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader handles loading levels from a directory.
type Loader struct {
	Root     string
	Defaults Defaults
}

// NewLoader creates a new level loader.
func NewLoader(root string, d Defaults) *Loader {
	return &Loader{Root: root, Defaults: d}
}

// FileError ties a load failure to its file.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Scan recursively loads every level file under Root. Files that fail to
// parse or validate are reported in bad rather than aborting the scan.
func (l *Loader) Scan() (levels []Level, bad []FileError, err error) {
	err = filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsLevelFile(path) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			bad = append(bad, FileError{Path: path, Err: err})
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	if dup := duplicateID(levels); dup != "" {
		return nil, bad, fmt.Errorf("duplicate level id %q under %s", dup, l.Root)
	}
	SortLevels(levels)
	return levels, bad, nil
}

// LoadAll loads the valid levels under Root, skipping invalid files.
func (l *Loader) LoadAll() ([]Level, error) {
	levels, _, err := l.Scan()
	return levels, err
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	level, err := ParseYAML(data, l.Defaults)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	level.FilePath = path
	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level not found: %s", id)
}

// IsLevelFile reports whether path has a level file extension.
func IsLevelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// SortLevels orders levels by Order, then ID.
func SortLevels(levels []Level) {
	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Order != levels[j].Order {
			return levels[i].Order < levels[j].Order
		}
		return levels[i].ID < levels[j].ID
	})
}

func duplicateID(levels []Level) string {
	seen := make(map[string]bool, len(levels))
	for _, l := range levels {
		if seen[l.ID] {
			return l.ID
		}
		seen[l.ID] = true
	}
	return ""
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
