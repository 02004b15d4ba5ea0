package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cratehole/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best solutions",
	Long: `Display the 10 best solutions (fewest moves) for a level, or a summary
of every solved level when no level is given.

Examples:
  cratehole scores
  cratehole scores holes-02`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func runScores(_ *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		return printSummary(a, store)
	}

	levelID := args[0]
	lvl, ok := a.findLevel(levelID)
	if !ok {
		return fmt.Errorf("unknown level %q; run 'cratehole list' to see available levels", levelID)
	}

	entries, err := store.TopCompletions(levelID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Best solutions - %s\n", lvl.Title())
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No solutions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'cratehole play %s' to set the first one!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-6s  %s\n", "Rank", "Player", "Moves", "Date")
	fmt.Printf("  %-4s  %-16s  %-6s  %s\n", "----", "------", "-----", "----")

	for i, e := range entries {
		fmt.Printf("  %-4d  %-16s  %-6d  %s\n", i+1, e.Player, e.Moves, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

// printSummary prints one line per level with its solve statistics.
func printSummary(a *app, store *storage.Store) error {
	stats, err := store.AllLevelStats()
	if err != nil {
		return err
	}

	fmt.Printf("  %-20s  %-6s  %-6s  %-6s  %s\n", "Level", "Solves", "Best", "Avg", "Last")
	fmt.Printf("  %-20s  %-6s  %-6s  %-6s  %s\n", "-----", "------", "----", "---", "----")

	for _, lvl := range a.levels {
		st, ok := stats[lvl.ID]
		if !ok {
			fmt.Printf("  %-20s  %-6d  %-6s  %-6s  %s\n", lvl.ID, 0, "-", "-", "-")
			continue
		}
		fmt.Printf("  %-20s  %-6d  %-6d  %-6.1f  %s\n",
			lvl.ID, st.Solves, st.BestMoves, st.AvgMoves, st.LastSolved.Format("2006-01-02"))
	}
	return nil
}
