// Package world provides the tile grid, terrain model and level generation.
package world

import "fmt"

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the delta from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// DistanceSquared returns the squared Euclidean distance between p and q.
func (p Point) DistanceSquared(q Point) int {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// IsAdjacent reports whether q is one of the eight neighbours of p.
func (p Point) IsAdjacent(q Point) bool {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return p != q && dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

// String returns "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Grid is a fixed-size rectangular addressing scheme mapping points to a flat index.
type Grid struct {
	Width  int
	Height int
}

// NewGrid creates a grid with the given dimensions.
// Non-positive dimensions are a programming error and panic.
func NewGrid(width, height int) Grid {
	if width <= 0 || height <= 0 {
		panic("grid dimensions must be positive")
	}
	return Grid{Width: width, Height: height}
}

// Size returns the number of cells in the grid.
func (g Grid) Size() int {
	return g.Width * g.Height
}

// InBounds returns true if p lies inside the grid.
func (g Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Index returns the flat index of p. Callers must check InBounds first.
func (g Grid) Index(p Point) int {
	return p.Y*g.Width + p.X
}

// PointAt returns the point for a flat index.
func (g Grid) PointAt(i int) Point {
	return Point{X: i % g.Width, Y: i / g.Width}
}
