package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/logical-psycho/internal/levels"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>...",
	Short: "Check level files for errors",
	Long: `Parse and validate level files. Directories are scanned for level files.
Exits with status 1 if any file fails.

Examples:
  psycho validate ./my-levels
  psycho validate custom.yaml other.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	a, err := newApp()
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	failed := 0
	checked := 0
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", arg, err)
			failed++
			continue
		}

		if !info.IsDir() {
			checked++
			loader := levels.NewLoader(filepath.Dir(arg), a.cfg.LevelDefaults())
			if l, err := loader.LoadFile(arg); err != nil {
				printInvalid(arg, err)
				failed++
			} else {
				fmt.Printf("ok    %s (%s)\n", arg, l.ID)
			}
			continue
		}

		good, bad, err := levels.NewLoader(arg, a.cfg.LevelDefaults()).Scan()
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", arg, err)
			failed++
			continue
		}
		for _, l := range good {
			checked++
			fmt.Printf("ok    %s (%s)\n", l.FilePath, l.ID)
		}
		for _, fe := range bad {
			checked++
			printInvalid(fe.Path, fe.Err)
			failed++
		}
	}

	fmt.Println()
	fmt.Printf("%d checked, %d failed\n", checked, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func printInvalid(path string, err error) {
	var ve levels.ValidationError
	if errors.As(err, &ve) {
		fmt.Printf("FAIL  %s: [%s] %s\n", path, ve.Code, ve.Message)
		return
	}
	fmt.Printf("FAIL  %s: %v\n", path, err)
}
