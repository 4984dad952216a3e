package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns the bundled level pack in play order.
func Builtin(d Defaults) ([]Level, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("levels: reading built-in pack: %w", err)
	}

	var out []Level
	for _, e := range entries {
		if e.IsDir() || !IsLevelFile(e.Name()) {
			continue
		}
		data, err := builtinFS.ReadFile(path.Join("builtin", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("levels: reading %s: %w", e.Name(), err)
		}
		level, err := ParseYAML(data, d)
		if err != nil {
			return nil, fmt.Errorf("levels: built-in %s: %w", e.Name(), err)
		}
		out = append(out, level)
	}
	SortLevels(out)
	return out, nil
}
