package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  "Display every level in play order, including levels loaded with --levels.",
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	a, err := newApp()
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	levels := a.catalog.List()
	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()
	fmt.Printf("  %-14s  %-24s  %s\n", "ID", "Title", "Source")
	fmt.Printf("  %-14s  %-24s  %s\n", "--", "-----", "------")
	for _, l := range levels {
		fmt.Printf("  %-14s  %-24s  %s\n", l.ID, l.Title, l.Source)
	}
	fmt.Println()
	fmt.Println("Run 'psycho play <id>' to start a level.")
}
