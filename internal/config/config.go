// Package config provides YAML-based configuration loading for cratehole.
package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/cratehole/internal/core"
)

// HolesConfig contains all configuration for the game.
type HolesConfig struct {
	Levels LevelsConfig `yaml:"levels"`
	Theme  ThemeConfig  `yaml:"theme"`
	Cues   CuesConfig   `yaml:"cues"`
	UI     UIConfig     `yaml:"ui"`
}

// LevelsConfig selects where levels come from.
type LevelsConfig struct {
	Dir           string `yaml:"dir"`            // Empty means the built-in pack
	StartCategory string `yaml:"start_category"` // Category shown first in the menu
	Watch         bool   `yaml:"watch"`          // Reload level files when they change
}

// ThemeConfig defines glyphs and colors. Colors are names understood by
// core.ParseColor.
type ThemeConfig struct {
	Wall        string   `yaml:"wall"`
	Floor       string   `yaml:"floor"`
	Hole        string   `yaml:"hole"`
	FilledHole  string   `yaml:"filled_hole"`
	Crate       string   `yaml:"crate"`
	Goal        string   `yaml:"goal"`
	Player      string   `yaml:"player"` // Four glyphs: north, south, west, east
	WallColor   string   `yaml:"wall_color"`
	FloorColor  string   `yaml:"floor_color"`
	HoleColor   string   `yaml:"hole_color"`
	GoalColor   string   `yaml:"goal_color"`
	DoneColor   string   `yaml:"done_color"`
	PlayerColor string   `yaml:"player_color"`
	Palette     []string `yaml:"palette"` // Crate colors by style, cycled
}

// CuesConfig lists the cue variants picked when the player moves or undoes.
// Cues are shown in the status line.
type CuesConfig struct {
	Enabled bool     `yaml:"enabled"`
	Move    []string `yaml:"move"`
	Undo    []string `yaml:"undo"`
}

// UIConfig defines layout parameters.
type UIConfig struct {
	CellWidth int  `yaml:"cell_width"` // Terminal columns per cell
	ShowHUD   bool `yaml:"show_hud"`
	ShowHints bool `yaml:"show_hints"`
}

// Validation errors.
var (
	ErrInvalidGlyph = errors.New("invalid glyph")
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidUI    = errors.New("invalid ui setting")
	ErrInvalidCues  = errors.New("invalid cues")
)

// Validate checks that every glyph is a single rune, every color is known
// and the layout is usable.
func (c HolesConfig) Validate() error {
	t := c.Theme
	glyphs := map[string]string{
		"wall":        t.Wall,
		"floor":       t.Floor,
		"hole":        t.Hole,
		"filled_hole": t.FilledHole,
		"crate":       t.Crate,
		"goal":        t.Goal,
	}
	for name, g := range glyphs {
		if utf8.RuneCountInString(g) != 1 {
			return fmt.Errorf("config: theme.%s %q: %w", name, g, ErrInvalidGlyph)
		}
	}
	if utf8.RuneCountInString(t.Player) != 4 {
		return fmt.Errorf("config: theme.player %q needs 4 glyphs: %w", t.Player, ErrInvalidGlyph)
	}

	colors := map[string]string{
		"wall_color":   t.WallColor,
		"floor_color":  t.FloorColor,
		"hole_color":   t.HoleColor,
		"goal_color":   t.GoalColor,
		"done_color":   t.DoneColor,
		"player_color": t.PlayerColor,
	}
	for name, col := range colors {
		if _, ok := core.ParseColor(col); !ok {
			return fmt.Errorf("config: theme.%s %q: %w", name, col, ErrInvalidColor)
		}
	}
	if len(t.Palette) == 0 {
		return fmt.Errorf("config: theme.palette is empty: %w", ErrInvalidColor)
	}
	for i, col := range t.Palette {
		if _, ok := core.ParseColor(col); !ok {
			return fmt.Errorf("config: theme.palette[%d] %q: %w", i, col, ErrInvalidColor)
		}
	}

	if c.UI.CellWidth < 1 || c.UI.CellWidth > 4 {
		return fmt.Errorf("config: ui.cell_width %d not in 1..4: %w", c.UI.CellWidth, ErrInvalidUI)
	}

	if c.Cues.Enabled && (len(c.Cues.Move) == 0 || len(c.Cues.Undo) == 0) {
		return fmt.Errorf("config: cues enabled without move and undo variants: %w", ErrInvalidCues)
	}
	return nil
}

// Color resolves a color name, falling back to the default color.
func Color(name string) core.Color {
	c, _ := core.ParseColor(name)
	return c
}

// Glyph returns the first rune of s, or fallback when s is empty.
func Glyph(s string, fallback rune) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return fallback
	}
	return r
}
