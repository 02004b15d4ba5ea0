package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cratehole/internal/games/holes"
	"github.com/vovakirdan/cratehole/internal/platform/tui"
	"github.com/vovakirdan/cratehole/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick levels from an interactive menu",
	Long: `Start in interactive menu mode.

Levels are grouped by category; solved levels show a check mark and
your best move count. After leaving a level you return to the menu.

Controls:
  Up/Down/j/k     - Navigate levels
  Left/Right/h/l  - Switch category
  Enter/Space     - Play level
  Tab             - Best solutions
  Q               - Quit

Examples:
  cratehole menu
  cratehole menu --levels ./my-levels --watch
  cratehole menu --db ./completions.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload level files when they change")
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	store := openStore(a)
	if store != nil {
		defer store.Close()
	}

	logger, closeLog := screenLogger()
	defer closeLog()
	reloads, stopWatch := a.watch(logger)
	defer stopWatch()

	cfg := terminalConfig()
	cfg.LevelID = a.startLevel()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(a.levels, store, cfg)
		if err != nil {
			return err
		}

		// Keep size changes and the last selection
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(a.levels, store, cfg.LevelID, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(holes.ID)
		if err != nil {
			return err
		}

		cfg.LevelID = menuResult.LevelID
		backToMenu, err := tui.Run(game, cfg, tui.GameOptions{
			Store:   store,
			Logger:  logger,
			Reloads: reloads,
		})
		if err != nil {
			return err
		}
		if !backToMenu {
			return nil
		}
	}
}
