package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/logical-psycho/internal/levels"
)

var flagOverwrite bool

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write the built-in levels as YAML",
	Long: `Write every built-in level to <dir> as a YAML file, as a starting point
for custom levels. Existing files are kept unless --force is given.

Examples:
  psycho export ./my-levels
  psycho play level-01 --levels ./my-levels`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&flagOverwrite, "force", false, "Overwrite existing files")
}

func runExport(_ *cobra.Command, args []string) {
	dir := args[0]

	a, err := newApp()
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	builtin, err := levels.Builtin(a.cfg.LevelDefaults())
	if err != nil {
		fail("%v", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fail("creating %s: %v", dir, err)
	}

	written := 0
	for _, l := range builtin {
		path := filepath.Join(dir, l.ID+".yaml")
		if _, err := os.Stat(path); err == nil && !flagOverwrite {
			fmt.Printf("skip  %s (exists)\n", path)
			continue
		}
		data, err := levels.MarshalLevel(l)
		if err != nil {
			fail("encoding %s: %v", l.ID, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fail("writing %s: %v", path, err)
		}
		fmt.Printf("wrote %s\n", path)
		written++
	}
	a.logger.Debug("export finished", "dir", dir, "written", written)
}
