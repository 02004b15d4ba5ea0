package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cratehole/internal/games/holes/core"
	"github.com/vovakirdan/cratehole/internal/games/holes/levels"
)

var flagCheckShow bool

var checkCmd = &cobra.Command{
	Use:   "check <files...>",
	Short: "Validate level files",
	Long: `Parse each level file and build the level from it, reporting why a
level is rejected.

Examples:
  cratehole check levels/*.yaml
  cratehole check --show my-level.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagCheckShow, "show", false, "Print valid levels as ASCII")
}

func runCheck(_ *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		lvl, err := levels.LoadFile(path)
		if err == nil {
			var l *core.Level
			l, err = lvl.NewLevel()
			if err == nil {
				fmt.Printf("ok    %s  (%s/%s, %d crates, %d goals)\n",
					path, lvl.Category, lvl.ID, len(l.Crates()), len(l.Goals()))
				if flagCheckShow {
					fmt.Println(core.RenderASCII(l))
				}
				continue
			}
		}

		failed++
		var loadErr *core.LoadError
		if errors.As(err, &loadErr) {
			fmt.Printf("FAIL  %s  %s\n", path, loadErr.Error())
			continue
		}
		fmt.Printf("FAIL  %s  %v\n", path, err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d level files invalid", failed, len(args))
	}
	return nil
}
