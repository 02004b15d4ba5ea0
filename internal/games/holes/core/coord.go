// Package core implements the hole-filling Sokoban simulation.
// It is UI-agnostic and deterministic: no rendering, no I/O, no randomness.
package core

import (
	"fmt"
	"strings"
)

// Coord is a cell position on the level grid.
// X increases to the right, Y increases downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the component-wise sum of two coordinates.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns the component-wise difference of two coordinates.
func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y}
}

// Step returns the neighbouring cell in the given direction.
func (c Coord) Step(d Direction) Coord {
	return c.Add(d.Delta())
}

// Direction is one of the four cardinal directions.
type Direction uint8

const (
	North Direction = iota
	South
	West
	East
)

// Directions lists all cardinal directions in declaration order.
var Directions = [...]Direction{North, South, West, East}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	default:
		return "unknown"
	}
}

// Delta returns the unit movement vector for the direction.
func (d Direction) Delta() Coord {
	switch d {
	case North:
		return Coord{X: 0, Y: -1}
	case South:
		return Coord{X: 0, Y: 1}
	case West:
		return Coord{X: -1, Y: 0}
	case East:
		return Coord{X: 1, Y: 0}
	default:
		return Coord{}
	}
}

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case West:
		return East
	case East:
		return West
	default:
		return d
	}
}

// ParseDirection converts a name ("north", "n", "up", ...) to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "north", "n", "up":
		return North, true
	case "south", "s", "down":
		return South, true
	case "west", "w", "left":
		return West, true
	case "east", "e", "right":
		return East, true
	default:
		return North, false
	}
}
