package core

import "strings"

// ASCII glyphs shared by RenderASCII and the ascii level format.
const (
	GlyphFloor      = '.'
	GlyphSolid      = '#'
	GlyphHole       = '_'
	GlyphFilledHole = 'o'
	GlyphPlayer     = '@'
	GlyphGoalAny    = '*'
)

// CrateGlyph returns '1'..'9' for crate styles 1..9 and '+' beyond.
func CrateGlyph(s CrateStyle) rune {
	if s >= 1 && s <= 9 {
		return rune('0' + s)
	}
	return '+'
}

// GoalGlyph returns '*' for goals accepting any style, 'a'..'i' for styles
// 1..9 and '?' beyond.
func GoalGlyph(a AcceptedStyle) rune {
	if a.AcceptsAny() {
		return GlyphGoalAny
	}
	s := a.Style()
	if s >= 1 && s <= 9 {
		return rune('a' + s - 1)
	}
	return '?'
}

// RenderASCII draws the level one character per cell, used for debugging and
// golden tests. Precedence per cell: player, surface crate, filled hole, goal,
// tile.
func RenderASCII(l *Level) string {
	w, h := l.tilemap.Size()
	var sb strings.Builder
	sb.Grow((w + 1) * h)

	for y := 0; y < h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			sb.WriteRune(l.glyphAt(C(x, y)))
		}
	}
	return sb.String()
}

func (l *Level) glyphAt(pos Coord) rune {
	if l.player.Pos == pos {
		return GlyphPlayer
	}
	if i := l.surfaceCrateAt(pos); i >= 0 {
		return CrateGlyph(l.crates[i].Style)
	}
	if l.holeCrateAt(pos) >= 0 {
		return GlyphFilledHole
	}
	if g := l.GoalAt(pos); g >= 0 {
		return GoalGlyph(l.goals[g].Accept)
	}
	tile, _ := l.tilemap.Get(pos)
	switch tile {
	case TileSolid:
		return GlyphSolid
	case TileHole:
		return GlyphHole
	default:
		return GlyphFloor
	}
}
