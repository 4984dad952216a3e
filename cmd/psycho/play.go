package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/logical-psycho/internal/platform/tui"
)

var flagResume bool

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Start playing the specified level.

Controls:
  WASD/Arrows/HJKL - Move one tile
  P/Esc            - Pause / resume
  R                - Restart the level
  N/Enter          - Next level (after completing one)
  B                - Back to the level list (paused or completed)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit (an unfinished run is saved as paused)

Difficulty options:
  easy   - Enemies decide 25% less often
  normal - Enemies decide at their configured frequency
  hard   - Enemies decide 25% more often
  fixed  - Same as normal; reserved for levels that ignore presets

Examples:
  psycho play level-01
  psycho play level-03 --resume
  psycho play level-02 --difficulty hard
  psycho play my-level --levels ./my-levels`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a level interactively",
	Long: `Open the level picker. Locked levels open after the previous level is
completed; paused runs are resumed where they were left.`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Resume the saved paused run of this level")
}

func runPlay(_ *cobra.Command, args []string) {
	runTUI(args[0], flagResume)
}

func runMenu(_ *cobra.Command, _ []string) {
	runTUI("", false)
}

func runTUI(levelID string, resume bool) {
	a, err := newApp()
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	if levelID != "" && !a.catalog.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'psycho list' to see available levels.")
		os.Exit(1)
	}

	cfg := a.runtimeConfig()

	// Open progress storage; the game still works without it.
	store := a.openStore()

	ctx, cancel := context.WithCancel(context.Background())
	a.watchLevels(ctx)

	a.quietForTUI()
	runErr := tui.Run(a.progress(store), cfg, levelID, resume)
	cancel()

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
