package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/logical-psycho/internal/platform/tui"
	"github.com/vovakirdan/logical-psycho/internal/storage"
)

var (
	flagInteractive bool
	flagScoreLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best completions",
	Long: `Without an argument, summarise every level: runs, best time and fewest
deaths. With a level ID, list that level's fastest completions.

Examples:
  psycho scores
  psycho scores level-02
  psycho scores -i`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in the terminal UI")
	scoresCmd.Flags().IntVar(&flagScoreLimit, "limit", 10, "Number of completions to show for one level")
}

func runScores(_ *cobra.Command, args []string) {
	a, err := newApp()
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening progress database: %v", err)
	}
	defer store.Close()

	if flagInteractive {
		cfg := a.runtimeConfig()
		a.quietForTUI()
		if err := tui.RunScoreboard(a.progress(store), cfg.ScreenW, cfg.ScreenH); err != nil {
			fail("%v", err)
		}
		return
	}

	rate := a.cfg.Movement.TickRate
	if len(args) == 0 {
		printSummary(a, store, rate)
		return
	}
	printLevelScores(a, store, args[0], rate)
}

func printSummary(a *app, store *storage.Store, rate int) {
	stats, err := store.AllLevelStats()
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Println("Progress")
	fmt.Println()
	fmt.Printf("  %-14s  %-4s  %-8s  %-6s  %s\n", "Level", "Runs", "Best", "Deaths", "Last played")
	fmt.Printf("  %-14s  %-4s  %-8s  %-6s  %s\n", "-----", "----", "----", "------", "-----------")
	for _, l := range a.catalog.List() {
		st, ok := stats[l.ID]
		if !ok {
			fmt.Printf("  %-14s  %-4d  %-8s  %-6s  %s\n", l.ID, 0, "-", "-", "-")
			continue
		}
		fmt.Printf("  %-14s  %-4d  %-8s  %-6d  %s\n",
			l.ID, st.Runs, formatDuration(st.BestTicks, rate), st.FewestDeaths,
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func printLevelScores(a *app, store *storage.Store, levelID string, rate int) {
	level, err := a.catalog.Get(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'psycho list' to see available levels.")
		os.Exit(1)
	}

	runs, err := store.TopCompletions(levelID, flagScoreLimit)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("Best completions - %s\n", level.Name)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No completions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'psycho play %s' to set the first time!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "Rank", "Time", "Ticks", "Deaths", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "----", "----", "-----", "------", "----")
	for i, run := range runs {
		fmt.Printf("  %-4d  %-8s  %-6d  %-6d  %s\n",
			i+1, formatDuration(run.Ticks, rate), run.Ticks, run.Deaths,
			run.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// formatDuration renders a tick count as seconds with one decimal.
func formatDuration(ticks, rate int) string {
	if rate <= 0 {
		rate = 60
	}
	return fmt.Sprintf("%.1fs", float64(ticks)/float64(rate))
}
