package core

import "fmt"

// CrateStyle identifies an interchangeable kind of crate. Zero is not a
// valid style.
type CrateStyle uint32

// AcceptedStyle is the crate style a goal accepts: any style, or one exact style.
type AcceptedStyle struct {
	any   bool
	style CrateStyle
}

// AnyStyle accepts every crate.
func AnyStyle() AcceptedStyle {
	return AcceptedStyle{any: true}
}

// OnlyStyle accepts crates of exactly style s.
func OnlyStyle(s CrateStyle) AcceptedStyle {
	return AcceptedStyle{style: s}
}

// AcceptsAny returns true if the goal takes any crate.
func (a AcceptedStyle) AcceptsAny() bool {
	return a.any
}

// Style returns the specific style accepted, or 0 when any style is accepted.
func (a AcceptedStyle) Style() CrateStyle {
	if a.any {
		return 0
	}
	return a.style
}

// Accepts reports whether a crate of style s satisfies this goal.
func (a AcceptedStyle) Accepts(s CrateStyle) bool {
	return a.any || a.style == s
}

func (a AcceptedStyle) String() string {
	if a.any {
		return "any"
	}
	return fmt.Sprintf("%d", a.style)
}

// Crate is a movable block.
type Crate struct {
	Pos   Coord
	Style CrateStyle
	// InHole is set once the crate has dropped into a hole and fills it.
	InHole bool
	// Positioned is derived: the crate currently satisfies a goal.
	Positioned bool
	// Covered is derived: the crate fills a hole and another crate rests on
	// top of it. Presentation layers draw covered crates translucent.
	Covered bool
}

// Goal is a fixed cell that wants a crate.
type Goal struct {
	Pos    Coord
	Accept AcceptedStyle
	// Done is derived from crate occupancy on every update.
	Done bool
}

// Player is the pusher. There is exactly one per level.
type Player struct {
	Pos    Coord
	Facing Direction
}
