package holes

import (
	"fmt"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/cratehole/internal/core"
	"github.com/vovakirdan/cratehole/internal/games/holes/core"
	"github.com/vovakirdan/cratehole/internal/games/holes/levels"
)

const (
	hudRows    = 2
	footerRows = 2
)

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.theme.ShowHUD {
		g.renderHUD(dst)
	}

	if g.level == nil {
		msg := "No level"
		if g.err != nil {
			msg = g.err.Error()
		}
		g.renderOverlay(dst, "Cannot load level", msg)
		return
	}

	area := g.boardArea(dst)
	w, h := g.level.Tilemap().Size()
	board := platformcore.Centered(area, w*g.theme.CellW, h)
	if board.W > area.W || board.H > area.H {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}
	g.renderBoard(dst, board)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "Category complete!", "Enter: back to menu")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case g.won:
		lvl := g.levels[g.index]
		hint := "Enter: next level"
		if _, ok := levels.Next(g.levels, lvl.ID); !ok {
			hint = "Enter: finish"
		}
		g.renderOverlay(dst, fmt.Sprintf("Used %d moves", g.level.ActionCount()), hint)
	}
}

// boardArea is the screen area left after the HUD and footer.
func (g *Game) boardArea(dst *platformcore.Screen) platformcore.Rect {
	area := dst.Bounds()
	if g.theme.ShowHUD {
		area.Y += hudRows
		area.H -= hudRows + footerRows
	}
	return area
}

// renderHUD draws the status bar, separator and footer.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	gray := platformcore.Fg(platformcore.ColorGray)

	hud := " " + g.Title()
	if g.index < len(g.levels) {
		lvl := g.levels[g.index]
		hud += fmt.Sprintf(" | %s | %s (%d/%d)", lvl.Category, lvl.Title(), g.index+1, len(g.levels))
	}
	if g.level != nil {
		hud += fmt.Sprintf(" | Moves: %d", g.level.ActionCount())
	}
	dst.DrawTextStyled(0, 0, hud, platformcore.Fg(platformcore.ColorCyan))

	for x := 0; x < dst.Width(); x++ {
		dst.SetStyled(x, 1, '─', gray)
		dst.SetStyled(x, dst.Height()-footerRows, '─', gray)
	}

	if g.status != "" {
		dst.DrawTextStyled(dst.Width()-utf8.RuneCountInString(g.status)-1, 0, g.status, platformcore.Fg(platformcore.ColorYellow))
	}

	if g.theme.ShowHints {
		dst.DrawTextStyled(0, dst.Height()-1, " ←↑↓→/WASD: Move | U: Undo | R: Restart | P: Pause | Esc: Menu | Q: Quit", gray)
	}
}

// renderBoard draws every cell of the level inside board.
func (g *Game) renderBoard(dst *platformcore.Screen, board platformcore.Rect) {
	l := g.level
	w, h := l.Tilemap().Size()

	surface := make(map[core.Coord]core.Crate)
	filled := make(map[core.Coord]core.Crate)
	for _, c := range l.Crates() {
		if c.InHole {
			filled[c.Pos] = c
		} else if _, ok := surface[c.Pos]; !ok {
			surface[c.Pos] = c
		}
	}
	goals := make(map[core.Coord]core.Goal)
	for _, gl := range l.Goals() {
		goals[gl.Pos] = gl
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pos := core.C(x, y)
			ch, st, fill := g.cellAt(pos, surface, filled, goals)

			sx := board.X + x*g.theme.CellW
			dst.SetStyled(sx, board.Y+y, ch, st)
			for i := 1; i < g.theme.CellW; i++ {
				pad := ' '
				if fill {
					pad = ch
				}
				dst.SetStyled(sx+i, board.Y+y, pad, st)
			}
		}
	}
}

// cellAt picks the glyph of one cell. Precedence: player, surface crate,
// filled hole, goal, tile. fill reports whether the glyph repeats across the
// cell width.
func (g *Game) cellAt(pos core.Coord, surface, filled map[core.Coord]core.Crate, goals map[core.Coord]core.Goal) (rune, platformcore.Style, bool) {
	t := g.theme
	p := g.level.Player()

	if p.Pos == pos {
		return t.Player[p.Facing], platformcore.Style{Fg: t.PlayerColor, Bold: true}, false
	}

	if c, ok := surface[pos]; ok {
		st := platformcore.Style{Fg: t.CrateColor(c.Style)}
		if c.Positioned {
			st = platformcore.Style{Fg: t.DoneColor, Bold: true}
		}
		if _, under := filled[pos]; under {
			st.Bg = t.HoleColor
		}
		return t.Crate, st, false
	}

	if c, ok := filled[pos]; ok {
		return t.FilledHole, platformcore.Style{Fg: t.CrateColor(c.Style), Dim: true}, false
	}

	if gl, ok := goals[pos]; ok {
		return t.Goal, platformcore.Fg(t.GoalColorFor(gl.Accept)), false
	}

	tile, _ := g.level.Tilemap().Get(pos)
	switch tile {
	case core.TileSolid:
		return t.Wall, platformcore.Fg(t.WallColor), true
	case core.TileHole:
		return t.Hole, platformcore.Fg(t.HoleColor), false
	default:
		return t.Floor, platformcore.Style{Fg: t.FloorColor, Dim: true}, false
	}
}

// renderOverlay draws a centered box with a title and subtitle.
func (g *Game) renderOverlay(dst *platformcore.Screen, title, subtitle string) {
	boxW := platformcore.Max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 6
	box := platformcore.Centered(dst.Bounds(), boxW, 5)

	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, platformcore.Fg(platformcore.ColorWhite))
	dst.DrawTextCenteredStyled(box.Y+1, title, platformcore.Style{Fg: platformcore.ColorBrightYellow, Bold: true})
	dst.DrawTextCenteredStyled(box.Y+3, subtitle, platformcore.Fg(platformcore.ColorGray))
}
