// Package fov computes what an observer can see from a tile.
package fov

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/cavewalk/internal/world"
)

// Rays is the number of rays cast, one per degree.
const Rays = 360

// Compute casts rays from the centre of observer's tile and returns the set of
// visible tiles. Every tile's Visible flag is reset first; tiles reached by a
// ray are marked Visible and Visited.
//
// A ray takes at most radius unit steps, the first of which is the observer's
// own tile. It stops when it leaves the level or after lighting an opaque
// tile. The observer's own tile never blocks, so standing in a doorway or on
// rubble does not blind you.
func Compute(level *world.Level, observer world.Point, radius int) mapset.Set[world.Point] {
	level.ResetVisibility()

	visible := mapset.New[world.Point]()
	visible.Put(observer)
	if level.InBounds(observer) {
		t := level.At(observer)
		t.Visible = true
		t.Visited = true
	}

	ox := float64(observer.X) + 0.5
	oy := float64(observer.Y) + 0.5
	for deg := 0; deg < Rays; deg++ {
		angle := float64(deg) * math.Pi / 180
		dx, dy := math.Cos(angle), math.Sin(angle)

		x, y := ox, oy
		for step := 0; step < radius; step++ {
			p := world.Point{X: int(math.Floor(x)), Y: int(math.Floor(y))}
			if !level.InBounds(p) {
				break
			}
			t := level.At(p)
			t.Visible = true
			t.Visited = true
			visible.Put(p)

			if !t.SeeThrough && p != observer {
				break
			}
			x += dx
			y += dy
		}
	}
	return visible
}

// Dim halves each channel of c, used for remembered but unseen tiles.
// Colours without an RGB value are returned unchanged.
func Dim(c tcell.Color) tcell.Color {
	if !c.Valid() {
		return c
	}
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return c
	}
	return tcell.NewRGBColor(r/2, g/2, b/2)
}
