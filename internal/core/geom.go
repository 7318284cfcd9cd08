// Package core provides fundamental types and utilities for FlipMatch.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Pos is a cell position on the card grid.
type Pos struct {
	X, Y int
}

// P is shorthand for constructing a Pos.
func P(x, y int) Pos {
	return Pos{X: x, Y: y}
}

// Index returns the row-major index of the position on a grid of the given width.
func (p Pos) Index(width int) int {
	return p.Y*width + p.X
}

// In reports whether the position lies inside a width x height grid.
func (p Pos) In(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// Step moves the position one cell in the direction of the action and clamps
// it to the grid. Non-movement actions return the position unchanged.
func (p Pos) Step(a Action, width, height int) Pos {
	switch a {
	case ActionUp:
		p.Y--
	case ActionDown:
		p.Y++
	case ActionLeft:
		p.X--
	case ActionRight:
		p.X++
	}
	p.X = Clamp(p.X, 0, width-1)
	p.Y = Clamp(p.Y, 0, height-1)
	return p
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
