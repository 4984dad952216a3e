// Package core provides fundamental types and utilities shared by the maze
// engine and the platform. It contains no external dependencies (especially
// no Bubble Tea) to keep game logic pure and testable.
package core

// Point is a pixel position, top-left anchored.
type Point struct {
	X, Y int
}

// Pt is shorthand for constructing a Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Rect represents an axis-aligned bounding box used for collision detection.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Square creates a size x size rectangle anchored at p.
func Square(p Point, size int) Rect {
	return Rect{X: p.X, Y: p.Y, W: size, H: size}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsPoint is Contains for a Point.
func (r Rect) ContainsPoint(p Point) bool {
	return r.Contains(p.X, p.Y)
}

// MidLeft returns the midpoint of the left edge.
func (r Rect) MidLeft() Point {
	return Point{X: r.X, Y: r.Y + r.H/2}
}

// MidRight returns the midpoint of the right edge.
func (r Rect) MidRight() Point {
	return Point{X: r.Right(), Y: r.Y + r.H/2}
}

// MidTop returns the midpoint of the top edge.
func (r Rect) MidTop() Point {
	return Point{X: r.X + r.W/2, Y: r.Y}
}

// MidBottom returns the midpoint of the bottom edge.
func (r Rect) MidBottom() Point {
	return Point{X: r.X + r.W/2, Y: r.Bottom()}
}

// Sign returns -1, 0, or 1.
func Sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
