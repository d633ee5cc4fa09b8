// Package core provides fundamental types and utilities for the word fall game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a position in normalized game space.
// X grows to the right, Y grows upward, both nominally within [0, 1].
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// RotateAround rotates v by angle radians about center, using the
// counter-clockwise convention of a Y-up coordinate system.
func (v Vec2) RotateAround(center Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	d := v.Sub(center)
	return Vec2{
		X: cos*d.X - sin*d.Y + center.X,
		Y: sin*d.X + cos*d.Y + center.Y,
	}
}

// ToScreenPos converts a game-space position into pixel space.
// Game space has its origin bottom-left, pixel space top-left.
func ToScreenPos(pos, canvasSize Vec2) Vec2 {
	return Vec2{
		X: pos.X * canvasSize.X,
		Y: canvasSize.Y - pos.Y*canvasSize.Y,
	}
}

// Box is an axis-aligned rectangle in float coordinates.
type Box struct {
	Min, Max Vec2
}

// BoxAround builds a box centered on c with the given half extents.
func BoxAround(c Vec2, halfW, halfH float64) Box {
	return Box{
		Min: Vec2{X: c.X - halfW, Y: c.Y - halfH},
		Max: Vec2{X: c.X + halfW, Y: c.Y + halfH},
	}
}

// Closest returns the point inside the box nearest to p.
func (b Box) Closest(p Vec2) Vec2 {
	return Vec2{
		X: ClampF(p.X, b.Min.X, b.Max.X),
		Y: ClampF(p.Y, b.Min.Y, b.Max.Y),
	}
}

// Dist returns the distance from p to the box (zero when p is inside).
func (b Box) Dist(p Vec2) float64 {
	return p.Sub(b.Closest(p)).Len()
}

// Rect represents an axis-aligned rectangle of screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
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

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
