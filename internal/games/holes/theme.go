package holes

import (
	platformcore "github.com/vovakirdan/cratehole/internal/core"
	"github.com/vovakirdan/cratehole/internal/config"
	"github.com/vovakirdan/cratehole/internal/games/holes/core"
)

// Theme holds resolved glyphs and colors for rendering.
type Theme struct {
	CellW int

	Wall       rune
	Floor      rune
	Hole       rune
	FilledHole rune
	Crate      rune
	Goal       rune
	Player     [4]rune // indexed by core.Direction

	WallColor   platformcore.Color
	FloorColor  platformcore.Color
	HoleColor   platformcore.Color
	GoalColor   platformcore.Color
	DoneColor   platformcore.Color
	PlayerColor platformcore.Color
	Palette     []platformcore.Color

	ShowHUD   bool
	ShowHints bool
}

// ThemeFromConfig resolves a theme from configuration. Invalid entries fall
// back to defaults; run HolesConfig.Validate to report them.
func ThemeFromConfig(cfg config.HolesConfig) Theme {
	tc := cfg.Theme
	t := Theme{
		CellW:       cfg.UI.CellWidth,
		Wall:        config.Glyph(tc.Wall, '#'),
		Floor:       config.Glyph(tc.Floor, '.'),
		Hole:        config.Glyph(tc.Hole, 'O'),
		FilledHole:  config.Glyph(tc.FilledHole, 'o'),
		Crate:       config.Glyph(tc.Crate, '='),
		Goal:        config.Glyph(tc.Goal, '+'),
		Player:      [4]rune{'^', 'v', '<', '>'},
		WallColor:   config.Color(tc.WallColor),
		FloorColor:  config.Color(tc.FloorColor),
		HoleColor:   config.Color(tc.HoleColor),
		GoalColor:   config.Color(tc.GoalColor),
		DoneColor:   config.Color(tc.DoneColor),
		PlayerColor: config.Color(tc.PlayerColor),
		ShowHUD:     cfg.UI.ShowHUD,
		ShowHints:   cfg.UI.ShowHints,
	}
	if p := []rune(tc.Player); len(p) == 4 {
		copy(t.Player[:], p)
	}
	for _, name := range tc.Palette {
		t.Palette = append(t.Palette, config.Color(name))
	}
	if len(t.Palette) == 0 {
		t.Palette = []platformcore.Color{platformcore.ColorOrange}
	}
	if t.CellW < 1 {
		t.CellW = 1
	}
	return t
}

// CrateColor returns the palette color for a crate style. Styles cycle
// through the palette.
func (t Theme) CrateColor(s core.CrateStyle) platformcore.Color {
	if s == 0 {
		return platformcore.ColorDefault
	}
	return t.Palette[int(s-1)%len(t.Palette)]
}

// GoalColorFor returns the color of a goal: its style's crate color, or the
// neutral goal color for goals accepting any style.
func (t Theme) GoalColorFor(a core.AcceptedStyle) platformcore.Color {
	if a.AcceptsAny() {
		return t.GoalColor
	}
	return t.CrateColor(a.Style())
}
