package core

import (
	"fmt"
	"hash/fnv"
)

// Effects receives fire-and-forget notifications from a Level.
// The level only signals that something happened; choosing a sound or cue is
// up to the implementation.
type Effects interface {
	Moved()
	Undone()
}

// NopEffects ignores every notification.
type NopEffects struct{}

func (NopEffects) Moved()  {}
func (NopEffects) Undone() {}

// Option configures a Level at construction.
type Option func(*Level)

// WithEffects routes move and undo notifications to e.
func WithEffects(e Effects) Option {
	return func(l *Level) {
		if e != nil {
			l.effects = e
		}
	}
}

// Level is the puzzle state machine. It exclusively owns its tilemap,
// objects and undo history. A Level is not safe for concurrent use.
type Level struct {
	tilemap *Tilemap
	spawn   Coord
	player  Player
	crates  []Crate
	goals   []Goal
	history []Action
	effects Effects
}

// NewLevel builds a level from a description. It fails with a *LoadError
// wrapping one of the Err* sentinels if the description is invalid.
func NewLevel(desc Description, opts ...Option) (*Level, error) {
	if desc.Infinite {
		return nil, newLoadError(ErrNotFinite, "")
	}
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, newLoadError(ErrInvalidDimensions, "size %dx%d", desc.Width, desc.Height)
	}

	building, okBuilding := desc.Layer(LayerBuilding)
	floor, okFloor := desc.Layer(LayerFloor)
	if !okBuilding || !okFloor {
		return nil, newLoadError(ErrInvalidLayers, "")
	}
	if len(floor) != desc.Width*desc.Height {
		return nil, newLoadError(ErrInvalidDimensions,
			"floor layer has %d cells, want %dx%d", len(floor), desc.Width, desc.Height)
	}

	tilemap, err := NewTilemap(desc.Width, desc.Height, building, desc.TileTypes)
	if err != nil {
		return nil, err
	}

	l := &Level{
		tilemap: tilemap,
		effects: NopEffects{},
	}

	var spawn *Coord
	occupied := make(map[Coord]bool)
	for i, obj := range desc.Objects {
		pos := C(obj.X, obj.Y)
		if !tilemap.InBounds(pos) {
			return nil, newLoadError(ErrInvalidObject, "object %d (%s) at %s is outside the map", i, obj.Type, pos)
		}

		switch obj.Type {
		case ObjectSpawn:
			if spawn != nil {
				return nil, newLoadError(ErrMultiplePlayerSpawns, "second spawn at %s", pos)
			}
			spawn = &pos

		case ObjectCrate:
			if obj.Style <= 0 {
				return nil, newLoadError(ErrInvalidStyle, "crate at %s has style %d", pos, obj.Style)
			}
			if occupied[pos] {
				return nil, newLoadError(ErrInvalidObject, "crates overlap at %s", pos)
			}
			occupied[pos] = true
			l.crates = append(l.crates, Crate{Pos: pos, Style: CrateStyle(obj.Style)})

		case ObjectGoal:
			accept := AnyStyle()
			switch {
			case obj.Style < 0:
				return nil, newLoadError(ErrInvalidStyle, "goal at %s accepts style %d", pos, obj.Style)
			case obj.Style > 0:
				accept = OnlyStyle(CrateStyle(obj.Style))
			}
			l.goals = append(l.goals, Goal{Pos: pos, Accept: accept})

		default:
			return nil, newLoadError(ErrInvalidObject, "object %d has unknown type %q", i, obj.Type)
		}
	}

	if len(l.goals) == 0 || len(l.crates) == 0 {
		return nil, newLoadError(ErrNoGoalsOrCrates, "%d goals, %d crates", len(l.goals), len(l.crates))
	}
	if spawn == nil {
		return nil, newLoadError(ErrNoPlayerSpawn, "")
	}

	l.spawn = *spawn
	l.player = Player{Pos: *spawn, Facing: South}

	for _, opt := range opts {
		opt(l)
	}

	l.Update()
	return l, nil
}

// Tilemap returns the level's immutable tilemap.
func (l *Level) Tilemap() *Tilemap {
	return l.tilemap
}

// Player returns the player state.
func (l *Level) Player() Player {
	return l.player
}

// Spawn returns the player's spawn cell.
func (l *Level) Spawn() Coord {
	return l.spawn
}

// Crates returns a copy of all crates in construction order.
func (l *Level) Crates() []Crate {
	out := make([]Crate, len(l.crates))
	copy(out, l.crates)
	return out
}

// Goals returns a copy of all goals in construction order.
func (l *Level) Goals() []Goal {
	out := make([]Goal, len(l.goals))
	copy(out, l.goals)
	return out
}

// ActionCount returns the undo history depth, i.e. moves currently in effect.
func (l *Level) ActionCount() int {
	return len(l.history)
}

// History returns a copy of the undo stack, oldest first.
func (l *Level) History() []Action {
	out := make([]Action, len(l.history))
	copy(out, l.history)
	return out
}

// IsWon returns true when every goal is done.
func (l *Level) IsWon() bool {
	for _, g := range l.goals {
		if !g.Done {
			return false
		}
	}
	return true
}

// IsCellObstructed returns true if nothing can be pushed into pos: the cell is
// solid, outside the map, or holds a crate that is not sitting in a hole.
func (l *Level) IsCellObstructed(pos Coord) bool {
	tile, ok := l.tilemap.Get(pos)
	if !ok || tile == TileSolid {
		return true
	}
	return l.surfaceCrateAt(pos) >= 0
}

// IsCellWalkable reports whether the player may stand on pos, ignoring any
// movable crate there. Holes are walkable only once a crate fills them.
func (l *Level) IsCellWalkable(pos Coord) bool {
	tile, ok := l.tilemap.Get(pos)
	if !ok {
		return false
	}
	switch tile {
	case TileFloor:
		return true
	case TileHole:
		return l.holeCrateAt(pos) >= 0
	default:
		return false
	}
}

// MovePlayer pushes in direction d, facing d. A blocked move changes nothing,
// facing included.
func (l *Level) MovePlayer(d Direction) bool {
	if !l.Perform(PushAction(d, d)) {
		return false
	}
	l.effects.Moved()
	return true
}

// Perform applies a and records its reciprocal on the undo stack.
func (l *Level) Perform(a Action) bool {
	undo, ok := a.Apply(l)
	if !ok {
		return false
	}
	l.history = append(l.history, undo)
	l.Update()
	return true
}

// Undo reverts the last recorded action. It returns false when there is
// nothing to undo. A reciprocal that fails to apply means the level state is
// corrupt, so Undo panics.
func (l *Level) Undo() bool {
	if len(l.history) == 0 {
		return false
	}

	last := l.history[len(l.history)-1]
	l.history = l.history[:len(l.history)-1]

	if _, ok := last.Apply(l); !ok {
		panic(fmt.Sprintf("core: could not undo %s", last))
	}

	l.Update()
	l.effects.Undone()
	return true
}

// Update recomputes the derived crate and goal flags from current positions.
func (l *Level) Update() {
	// Collect first, mutate second.
	var covered []int
	for i := range l.crates {
		if !l.crates[i].InHole {
			continue
		}
		for j := range l.crates {
			if i != j && !l.crates[j].InHole && l.crates[j].Pos == l.crates[i].Pos {
				covered = append(covered, i)
				break
			}
		}
	}
	for i := range l.crates {
		l.crates[i].Covered = false
		l.crates[i].Positioned = false
	}
	for _, i := range covered {
		l.crates[i].Covered = true
	}

	for gi := range l.goals {
		l.goals[gi].Done = false
		for ci := range l.crates {
			c := &l.crates[ci]
			if c.Pos == l.goals[gi].Pos && !c.InHole && l.goals[gi].Accept.Accepts(c.Style) {
				l.goals[gi].Done = true
				c.Positioned = true
				break
			}
		}
	}
}

// Snapshot is the mutable part of a level: what undo must restore exactly.
type Snapshot struct {
	Player Player
	Crates []CrateState
}

// CrateState is the mutable part of a crate.
type CrateState struct {
	Pos    Coord
	InHole bool
}

// Snapshot captures the player and every crate's position and hole flag.
func (l *Level) Snapshot() Snapshot {
	s := Snapshot{
		Player: l.player,
		Crates: make([]CrateState, len(l.crates)),
	}
	for i, c := range l.crates {
		s.Crates[i] = CrateState{Pos: c.Pos, InHole: c.InHole}
	}
	return s
}

// Equal returns true if two snapshots describe the same state.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Player != o.Player || len(s.Crates) != len(o.Crates) {
		return false
	}
	for i := range s.Crates {
		if s.Crates[i] != o.Crates[i] {
			return false
		}
	}
	return true
}

// Hash returns a hash of the level's mutable state and history depth.
func (l *Level) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "P:%d:%d:%d;", l.player.Pos.X, l.player.Pos.Y, l.player.Facing)
	for _, c := range l.crates {
		fmt.Fprintf(h, "C:%d:%d:%d:%v;", c.Pos.X, c.Pos.Y, c.Style, c.InHole)
	}
	fmt.Fprintf(h, "H:%d", len(l.history))
	return h.Sum64()
}

// CratesAt returns the indices of every crate on pos, in construction order.
func (l *Level) CratesAt(pos Coord) []int {
	var out []int
	for i, c := range l.crates {
		if c.Pos == pos {
			out = append(out, i)
		}
	}
	return out
}

// GoalAt returns the index of the goal on pos, or -1.
func (l *Level) GoalAt(pos Coord) int {
	for i, g := range l.goals {
		if g.Pos == pos {
			return i
		}
	}
	return -1
}

// surfaceCrateAt returns the first crate on pos that is not in a hole, or -1.
func (l *Level) surfaceCrateAt(pos Coord) int {
	for i, c := range l.crates {
		if c.Pos == pos && !c.InHole {
			return i
		}
	}
	return -1
}

// holeCrateAt returns the crate filling the hole on pos, or -1.
func (l *Level) holeCrateAt(pos Coord) int {
	for i, c := range l.crates {
		if c.Pos == pos && c.InHole {
			return i
		}
	}
	return -1
}

// pullableCrateAt returns the crate a pull would drag from pos: the crate on
// top when crates are stacked over a filled hole, otherwise the hole crate.
func (l *Level) pullableCrateAt(pos Coord) int {
	if i := l.surfaceCrateAt(pos); i >= 0 {
		return i
	}
	return l.holeCrateAt(pos)
}

// claimsHole reports whether crate idx arriving at pos drops into a hole:
// pos must be a hole no other crate fills yet.
func (l *Level) claimsHole(pos Coord, idx int) bool {
	if !l.tilemap.Is(pos, TileHole) {
		return false
	}
	for i, c := range l.crates {
		if i != idx && c.Pos == pos && c.InHole {
			return false
		}
	}
	return true
}
