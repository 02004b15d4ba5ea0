// cratehole is a terminal crate-pushing puzzle where crates fill holes.
//
// Usage:
//
//	cratehole list               - List levels by category
//	cratehole play [level]       - Play a level (and the rest of its category)
//	cratehole menu               - Pick levels interactively
//	cratehole serve              - Start SSH server for remote play
//	cratehole scores [level]     - Show best solutions
//	cratehole check <files...>   - Validate level files
//	cratehole config             - Show or write the config file
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible cues
//	--db <path>          - Set database path (default: ~/.cratehole/completions.db)
//	--levels <dir>       - Load levels from a directory instead of the built-in pack
//	--config <path>      - Use a custom config file
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Log to a file while the game is on screen
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cratehole/internal/config"
	"github.com/vovakirdan/cratehole/internal/games/holes"
	"github.com/vovakirdan/cratehole/internal/games/holes/levels"
	"github.com/vovakirdan/cratehole/internal/registry"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagLevelsDir string
	flagConfig    string
	flagLogLevel  string
	flagLogFile   string
	flagWatch     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cratehole",
	Short: "Crate Hole - push crates, fill holes, reach the goals",
	Long: `Crate Hole is a terminal crate-pushing puzzle. Crates pushed into a
hole fill it and become a bridge; every goal needs a crate of its style.

Available commands:
  list     - Show all levels
  play     - Play a level directly
  menu     - Interactive level picker
  serve    - Start SSH server for remote play
  scores   - View best solutions
  check    - Validate level files
  config   - Show or write the config file

Examples:
  cratehole list
  cratehole play intro-01
  cratehole menu --levels ./my-levels --watch
  cratehole serve --ssh :2222
  cratehole scores holes-02`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cratehole/completions.db", "Path to completions database")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: built-in pack)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file used while the game is on screen")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "cratehole",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// screenLogger returns the logger used while a full-screen program runs.
// Without --log-file it is nil: stderr output would tear the screen.
func screenLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return nil, func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return nil, func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// app is everything the commands share once config and levels are loaded.
type app struct {
	logger *log.Logger
	config config.HolesConfig
	levels []levels.Level
	dir    string // level directory; empty for the built-in pack
}

// loadApp loads config and levels and registers the game.
func loadApp() (*app, error) {
	logger := newLogger(os.Stderr)

	cfg, err := config.LoadHoles(flagConfig)
	if err != nil {
		return nil, err
	}

	dir := cfg.Levels.Dir
	if flagLevelsDir != "" {
		dir = flagLevelsDir
	}

	var loader *levels.Loader
	if dir != "" {
		abs, absErr := filepath.Abs(dir)
		if absErr != nil {
			return nil, fmt.Errorf("levels: %w", absErr)
		}
		dir = abs
		loader = levels.NewLoader(dir)
	} else {
		loader = levels.NewDefaultLoader()
	}

	lvls, err := loader.WithLogger(logger).LoadAll()
	if err != nil {
		return nil, err
	}
	if len(lvls) == 0 {
		return nil, fmt.Errorf("no valid levels in %s", loader.Root)
	}
	logger.Debug("levels loaded", "count", len(lvls), "root", loader.Root)

	a := &app{
		logger: logger,
		config: cfg,
		levels: lvls,
		dir:    dir,
	}

	registry.Register(holes.ID, "Crate Hole", func() registry.Game {
		return holes.New(holes.Setup{Levels: a.levels, Config: a.config})
	})

	return a, nil
}

// startLevel is the level play starts on when none is given: the first
// level of the configured start category, or the first level.
func (a *app) startLevel() string {
	for _, lvl := range a.levels {
		if lvl.Category == a.config.Levels.StartCategory {
			return lvl.ID
		}
	}
	return a.levels[0].ID
}

// findLevel looks up a level by ID.
func (a *app) findLevel(id string) (levels.Level, bool) {
	for _, lvl := range a.levels {
		if lvl.ID == id {
			return lvl, true
		}
	}
	return levels.Level{}, false
}

// watch starts the level watcher when enabled and possible. The returned
// channel is nil when nothing is watched.
func (a *app) watch(logger *log.Logger) (<-chan string, func()) {
	enabled := a.config.Levels.Watch || flagWatch
	if !enabled {
		return nil, func() {}
	}
	if a.dir == "" {
		a.logger.Warn("--watch needs --levels; the built-in pack cannot change")
		return nil, func() {}
	}

	w, err := levels.NewWatcher(a.dir)
	if err != nil {
		a.logger.Warn("cannot watch levels", "dir", a.dir, "error", err)
		return nil, func() {}
	}

	go func() {
		for err := range w.Errors {
			if logger != nil {
				logger.Warn("watcher error", "error", err)
			}
		}
	}()

	return w.Events, func() { w.Close() }
}
