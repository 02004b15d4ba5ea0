package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cratehole/internal/core"
	"github.com/vovakirdan/cratehole/internal/games/holes"
	"github.com/vovakirdan/cratehole/internal/platform/tui"
	"github.com/vovakirdan/cratehole/internal/registry"
	"github.com/vovakirdan/cratehole/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the given level, or the first level of the start category.
Solving a level and pressing Enter moves on to the next level of the
same category.

Controls:
  Arrows/WASD/hjkl  - Move (pushes crates)
  U/Z/Backspace     - Undo
  R                 - Restart level
  Enter             - Next level (once solved)
  P                 - Pause
  Esc/B             - Leave
  Q/Ctrl+C          - Quit

Examples:
  cratehole play
  cratehole play holes-02
  cratehole play --levels ./my-levels --watch my-level`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload level files when they change")
}

// terminalConfig builds a runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the completions database. The game still works without
// it, so failure is only a warning.
func openStore(a *app) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		a.logger.Warn("could not open completions database", "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	cfg := terminalConfig()
	cfg.LevelID = a.startLevel()
	if len(args) == 1 {
		if _, ok := a.findLevel(args[0]); !ok {
			return fmt.Errorf("unknown level %q; run 'cratehole list' to see available levels", args[0])
		}
		cfg.LevelID = args[0]
	}

	game, err := registry.Create(holes.ID)
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

	_, err = tui.Run(game, cfg, tui.GameOptions{
		Store:   store,
		Logger:  logger,
		Reloads: reloads,
	})
	return err
}
