package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cratehole/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows every loaded level grouped by category, with your best solution.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	var done map[string]int
	if store := openStore(a); store != nil {
		done, err = store.CompletedLevels(storage.LocalPlayer)
		store.Close()
		if err != nil {
			a.logger.Warn("cannot read completions", "error", err)
		}
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, lvl := range a.levels {
		if len(lvl.ID) > maxIDLen {
			maxIDLen = len(lvl.ID)
		}
	}

	category := ""
	for i := range a.levels {
		lvl := &a.levels[i]
		if i == 0 || lvl.Category != category {
			category = lvl.Category
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("%s:\n", category)
			fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Best", "Name")
			fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "----", "----")
		}

		best := "-"
		if moves, ok := done[lvl.ID]; ok {
			best = fmt.Sprintf("%d", moves)
		}
		fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, lvl.ID, best, lvl.Title())
	}

	fmt.Println()
	fmt.Println("Run 'cratehole play <id>' to play a level.")
	return nil
}
