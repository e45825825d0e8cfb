// Package core provides fundamental types and utilities for the orchard arena.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// simulation pure and testable.
package core

import (
	"errors"
	"fmt"
)

// ErrInvalidDelta is returned when a vector does not correspond to a single
// step in one of the four directions.
var ErrInvalidDelta = errors.New("core: vector is not a unit step")

// Coord represents a cell on the board.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns the sum of two coordinates.
func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Sub returns the vector from other to c.
func (c Coord) Sub(other Coord) Coord {
	return Coord{X: c.X - other.X, Y: c.Y - other.Y}
}

// Step returns the neighbouring cell in direction d.
// DirNone returns c unchanged.
func (c Coord) Step(d Direction) Coord {
	return c.Add(d.Delta())
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is a move command. The zero value means "no move".
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Directions lists every move in neighbour expansion order.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the unit vector for the direction.
func (d Direction) Delta() Coord {
	switch d {
	case DirUp:
		return Coord{X: 0, Y: -1}
	case DirDown:
		return Coord{X: 0, Y: 1}
	case DirLeft:
		return Coord{X: -1, Y: 0}
	case DirRight:
		return Coord{X: 1, Y: 0}
	default:
		return Coord{}
	}
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirNone:
		return "none"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// DirectionOf maps a unit vector back to its direction.
func DirectionOf(delta Coord) (Direction, error) {
	for _, d := range Directions {
		if d.Delta() == delta {
			return d, nil
		}
	}
	return DirNone, fmt.Errorf("%w: %s", ErrInvalidDelta, delta)
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
