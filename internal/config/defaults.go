package config

import (
	_ "embed"
)

//go:embed defaults/holes.yaml
var defaultHolesYAML []byte

// DefaultHolesConfig returns the hardcoded configuration used when no file,
// not even the embedded default, can be read.
func DefaultHolesConfig() HolesConfig {
	return HolesConfig{
		Levels: LevelsConfig{
			StartCategory: "intro",
		},
		Theme: ThemeConfig{
			Wall:        "█",
			Floor:       "·",
			Hole:        "○",
			FilledHole:  "◙",
			Crate:       "■",
			Goal:        "◇",
			Player:      "▲▼◀▶",
			WallColor:   "gray",
			FloorColor:  "dark_gray",
			HoleColor:   "blue",
			GoalColor:   "white",
			DoneColor:   "bright_green",
			PlayerColor: "bright_yellow",
			Palette:     []string{"orange", "cyan", "magenta", "bright_red", "bright_blue", "green"},
		},
		Cues: CuesConfig{
			Enabled: true,
			Move:    []string{"step", "shuffle", "scrape"},
			Undo:    []string{"rewind", "whoosh"},
		},
		UI: UIConfig{
			CellWidth: 2,
			ShowHUD:   true,
			ShowHints: true,
		},
	}
}
