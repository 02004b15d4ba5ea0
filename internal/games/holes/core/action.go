package core

import "fmt"

// ActionKind distinguishes the two movement primitives.
type ActionKind uint8

const (
	// Push moves the player one cell, shoving a surface crate in front of it.
	Push ActionKind = iota
	// Pull moves the player one cell, dragging the crate standing behind it
	// into the cell it leaves. Pull lifts crates out of holes.
	Pull
)

func (k ActionKind) String() string {
	switch k {
	case Push:
		return "push"
	case Pull:
		return "pull"
	default:
		return "unknown"
	}
}

// Action is a single reversible move. Applying it yields its reciprocal.
type Action struct {
	Kind      ActionKind
	Direction Direction
	// Look is the direction the player faces after the action.
	Look Direction
}

// PushAction returns a push in direction d, ending with the player facing look.
func PushAction(d, look Direction) Action {
	return Action{Kind: Push, Direction: d, Look: look}
}

// PullAction returns a pull in direction d, ending with the player facing look.
func PullAction(d, look Direction) Action {
	return Action{Kind: Pull, Direction: d, Look: look}
}

func (a Action) String() string {
	return fmt.Sprintf("%s %s (look %s)", a.Kind, a.Direction, a.Look)
}

// Apply performs the action on l. On success it returns the action that
// undoes it. On failure l is left untouched.
//
// Reciprocals are not symmetric: a plain walk is undone by a Push back, a
// crate push is undone by a Pull back, and every Pull is undone by a Push.
func (a Action) Apply(l *Level) (Action, bool) {
	switch a.Kind {
	case Push:
		return a.applyPush(l)
	case Pull:
		return a.applyPull(l)
	default:
		return Action{}, false
	}
}

func (a Action) applyPush(l *Level) (Action, bool) {
	previousLook := l.player.Facing
	target := l.player.Pos.Step(a.Direction)

	if !l.IsCellWalkable(target) {
		return Action{}, false
	}

	leading := l.surfaceCrateAt(target)
	if leading < 0 {
		l.player = Player{Pos: target, Facing: a.Look}
		return PushAction(a.Direction.Inverse(), previousLook), true
	}

	crateTarget := target.Step(a.Direction)
	if l.IsCellObstructed(crateTarget) {
		return Action{}, false
	}

	drops := l.claimsHole(crateTarget, leading)

	l.player = Player{Pos: target, Facing: a.Look}
	l.crates[leading].Pos = crateTarget
	l.crates[leading].InHole = drops

	return PullAction(a.Direction.Inverse(), previousLook), true
}

func (a Action) applyPull(l *Level) (Action, bool) {
	previousLook := l.player.Facing
	delta := a.Direction.Delta()
	source := l.player.Pos.Sub(delta)
	target := l.player.Pos.Add(delta)

	if !l.IsCellWalkable(target) {
		return Action{}, false
	}

	dragged := l.pullableCrateAt(source)
	if dragged < 0 {
		l.player = Player{Pos: target, Facing: a.Look}
		return PushAction(a.Direction.Inverse(), previousLook), true
	}

	crateTarget := l.player.Pos
	// The player stands here, so this only trips if several bodies ever
	// share a cell.
	if l.IsCellObstructed(crateTarget) {
		return Action{}, false
	}

	drops := l.claimsHole(crateTarget, dragged)

	l.player = Player{Pos: target, Facing: a.Look}
	l.crates[dragged].Pos = crateTarget
	l.crates[dragged].InHole = drops

	return PushAction(a.Direction.Inverse(), previousLook), true
}
