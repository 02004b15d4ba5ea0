// Package holes adapts the hole-filling crate puzzle to the platform's Game
// interface.
package holes

import (
	"fmt"
	"math/rand"
	"time"

	platformcore "github.com/vovakirdan/cratehole/internal/core"
	"github.com/vovakirdan/cratehole/internal/config"
	"github.com/vovakirdan/cratehole/internal/games/holes/core"
	"github.com/vovakirdan/cratehole/internal/games/holes/levels"
)

// ID is the registry identifier of the game.
const ID = "holes"

// Setup is everything a game instance needs besides the runtime config.
type Setup struct {
	Levels []levels.Level
	Config config.HolesConfig
}

// Game implements registry.Game around a core.Level.
type Game struct {
	setup Setup
	theme Theme

	rng  *rand.Rand
	cues *Cues

	levels []levels.Level
	index  int
	level  *core.Level
	err    error

	screenW int
	screenH int

	won      bool
	reported bool // a Completion was returned for the current solved state
	gameOver bool
	paused   bool
	status   string
}

// New creates a game over a level set.
func New(setup Setup) *Game {
	return &Game{
		setup:  setup,
		theme:  ThemeFromConfig(setup.Config),
		levels: append([]levels.Level(nil), setup.Levels...),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Crate Hole"
}

// Reset starts over on cfg.LevelID, or the first level.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.cues = NewCues(g.setup.Config.Cues, g.rng)
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.paused = false

	g.index = 0
	if cfg.LevelID != "" {
		if i := g.indexOf(cfg.LevelID); i >= 0 {
			g.index = i
		} else {
			g.err = fmt.Errorf("unknown level %q", cfg.LevelID)
			g.level = nil
			return
		}
	}
	g.loadCurrentLevel()
}

func (g *Game) indexOf(id string) int {
	for i, lvl := range g.levels {
		if lvl.ID == id {
			return i
		}
	}
	return -1
}

// loadCurrentLevel (re)constructs the level at index.
func (g *Game) loadCurrentLevel() {
	g.won = false
	g.reported = false
	g.status = ""
	g.level = nil
	g.err = nil

	if g.index >= len(g.levels) {
		g.err = fmt.Errorf("no levels")
		return
	}

	lvl := g.levels[g.index]
	l, err := lvl.NewLevel(core.WithEffects(g.cues))
	if err != nil {
		g.err = err
		return
	}
	g.level = l
	// A level may start solved; it still needs a confirm to move on.
	g.won = l.IsWon()
}

// Step applies the frame's actions in order.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	var completed *platformcore.Completion

	for _, a := range input.Actions {
		if c := g.apply(a); c != nil {
			completed = c
		}
	}

	return platformcore.StepResult{State: g.State(), Completed: completed}
}

func (g *Game) apply(a platformcore.Action) *platformcore.Completion {
	if a == platformcore.ActionPause {
		g.paused = !g.paused
		return nil
	}
	if g.paused || g.gameOver || g.level == nil {
		return nil
	}

	switch a {
	case platformcore.ActionRestart:
		g.loadCurrentLevel()
		g.status = "restarted"
		return nil

	case platformcore.ActionUndo:
		if !g.level.Undo() {
			g.status = "nothing to undo"
			return nil
		}
		g.won = g.level.IsWon()
		g.status = g.cues.Last()
		if !g.won {
			g.reported = false
			return nil
		}
		return g.complete()

	case platformcore.ActionConfirm:
		if !g.won {
			return nil
		}
		// A level that started solved reports on its way out.
		c := g.complete()
		g.advance()
		return c
	}

	d, ok := directionFor(a)
	if !ok || g.won {
		return nil
	}

	g.cues.Clear()
	if !g.level.MovePlayer(d) {
		g.status = "blocked"
		return nil
	}
	g.status = g.cues.Last()

	if !g.level.IsWon() {
		return nil
	}
	g.won = true
	return g.complete()
}

// complete returns the Completion of the current solved state, once.
func (g *Game) complete() *platformcore.Completion {
	if g.reported {
		return nil
	}
	g.reported = true
	lvl := g.levels[g.index]
	return &platformcore.Completion{
		LevelID:  lvl.ID,
		Category: lvl.Category,
		Moves:    g.level.ActionCount(),
	}
}

// advance moves to the next level of the category, or ends the game after
// the category's last level.
func (g *Game) advance() {
	cur := g.levels[g.index]
	next, ok := levels.Next(g.levels, cur.ID)
	if !ok {
		g.gameOver = true
		return
	}
	g.index = g.indexOf(next.ID)
	g.loadCurrentLevel()
}

func directionFor(a platformcore.Action) (core.Direction, bool) {
	switch a {
	case platformcore.ActionUp:
		return core.North, true
	case platformcore.ActionDown:
		return core.South, true
	case platformcore.ActionLeft:
		return core.West, true
	case platformcore.ActionRight:
		return core.East, true
	default:
		return core.North, false
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		GameOver: g.gameOver,
		Paused:   g.paused,
		Won:      g.won,
	}
	if g.level != nil {
		st.Score = g.level.ActionCount()
	}
	if g.index < len(g.levels) {
		st.LevelID = g.levels[g.index].ID
	}
	return st
}

// Snapshot returns the mutable state of the current level.
func (g *Game) Snapshot() core.Snapshot {
	if g.level == nil {
		return core.Snapshot{}
	}
	return g.level.Snapshot()
}

// Current returns the current level definition and its live state. The
// live level is nil when construction failed.
func (g *Game) Current() (levels.Level, *core.Level) {
	if g.index >= len(g.levels) {
		return levels.Level{}, nil
	}
	return g.levels[g.index], g.level
}

// Err returns why the current level could not be built, if it could not.
func (g *Game) Err() error {
	return g.err
}

// ReloadFile re-reads a changed level file. If it is the level being played,
// the level restarts with the new definition.
func (g *Game) ReloadFile(path string) (bool, error) {
	lvl, err := levels.LoadFile(path)
	if err != nil {
		return false, err
	}
	if _, err := lvl.NewLevel(); err != nil {
		return false, err
	}

	i := g.indexOf(lvl.ID)
	if i < 0 {
		return false, nil
	}
	lvl.Category = g.levels[i].Category
	g.levels[i] = lvl
	if i != g.index {
		return false, nil
	}
	g.gameOver = false
	g.loadCurrentLevel()
	g.status = "reloaded"
	return true, nil
}
