// psycho is a tile-based maze game for the terminal: slide from the start
// tile to the goal while enemies hunt you down.
//
// Usage:
//
//	psycho list                  - List levels in play order
//	psycho play <level>          - Play a level (--resume continues a paused run)
//	psycho menu                  - Pick levels interactively
//	psycho scores [level]        - Show best completions
//	psycho validate <path>...    - Check level files
//	psycho export <dir>          - Write the built-in levels as YAML
//	psycho serve                 - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible enemies
//	--db <path>           - Set database path (default: ~/.psycho/progress.db)
//	--levels <dir>        - Load extra levels from a directory
//	--config <path>       - Use a custom config file
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/logical-psycho/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLevelsDir  string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "psycho",
	Short: "Logical Psycho - a sliding maze game for your terminal",
	Long: `Logical Psycho is a tile-based maze game. Every move slides you one
whole tile; walls stop you, enemies end the attempt, and reaching the goal
unlocks the next level.

Available commands:
  list      - Show all levels
  play      - Play a specific level
  menu      - Interactive level picker
  scores    - View best completions
  validate  - Check level files for errors
  export    - Write the built-in levels to a directory
  serve     - Start SSH server for remote play

Examples:
  psycho list
  psycho play level-01
  psycho play level-04 --resume
  psycho menu --difficulty hard
  psycho validate ./my-levels
  psycho serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate in ticks per second (0 = config value, normally 60)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
}
