package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cratehole/internal/config"
)

var flagWriteConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or write the config file",
	Long: `Show where the config file is looked up, or write the default config
there so it can be edited.

Search order:
  --config <path>
  ~/.cratehole/configs/holes.yaml
  ./configs/holes.yaml
  built-in defaults

Examples:
  cratehole config
  cratehole config --write`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagWriteConfig, "write", false, "Write the default config to the user config path (or --config)")
}

func runConfig(_ *cobra.Command, _ []string) error {
	path := flagConfig
	if path == "" {
		path = config.UserConfigPath()
	}

	if flagWriteConfig {
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", path)
		return nil
	}

	cfg, err := config.LoadHoles(flagConfig)
	if err != nil {
		return err
	}
	fmt.Printf("User config path: %s\n", path)
	fmt.Printf("Levels dir:       %s\n", orDefault(cfg.Levels.Dir, "(built-in pack)"))
	fmt.Printf("Start category:   %s\n", orDefault(cfg.Levels.StartCategory, "(first)"))
	fmt.Printf("Watch:            %v\n", cfg.Levels.Watch)
	fmt.Printf("Cell width:       %d\n", cfg.UI.CellWidth)
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
