package world

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// Region is a set of crossable tiles connected through 8-neighbour steps.
type Region struct {
	Points []Point
}

// Size returns the number of tiles in the region.
func (r Region) Size() int {
	return len(r.Points)
}

// Reachable returns every crossable point connected to from, including from itself.
// The result is empty when from is out of bounds or not crossable.
func (l *Level) Reachable(from Point) mapset.Set[Point] {
	seen := mapset.New[Point]()
	if !l.IsCrossable(from) {
		return seen
	}

	queue := []Point{from}
	seen.Put(from)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dir := range Compass() {
			next := current.Add(dir.Delta())
			if !l.IsCrossable(next) || seen.Has(next) {
				continue
			}
			seen.Put(next)
			queue = append(queue, next)
		}
	}
	return seen
}

// Regions labels every connected group of crossable tiles, in scan order.
func (l *Level) Regions() []Region {
	labelled := mapset.New[Point]()
	var regions []Region

	for i := range l.Tiles {
		p := l.PointAt(i)
		if !l.Tiles[i].Crossable || labelled.Has(p) {
			continue
		}
		var region Region
		l.Reachable(p).Each(func(q Point) {
			labelled.Put(q)
			region.Points = append(region.Points, q)
		})
		regions = append(regions, region)
	}
	return regions
}

// LargestRegionShare returns the fraction of crossable tiles that belong to the
// biggest region. A level with no crossable tiles reports 0.
func (l *Level) LargestRegionShare() float64 {
	total := l.CrossableCount()
	if total == 0 {
		return 0
	}
	largest := 0
	for _, r := range l.Regions() {
		if r.Size() > largest {
			largest = r.Size()
		}
	}
	return float64(largest) / float64(total)
}

// SealUnreachable turns every crossable tile not connected to anchor into mud wall
// and returns how many tiles were sealed. Nothing is sealed if anchor is not crossable.
func (l *Level) SealUnreachable(anchor Point, rng *rand.Rand) int {
	keep := l.Reachable(anchor)
	if keep.Size() == 0 {
		return 0
	}

	sealed := 0
	for i := range l.Tiles {
		t := &l.Tiles[i]
		if !t.Crossable || keep.Has(t.Position) {
			continue
		}
		visible, visited := t.Visible, t.Visited
		*t = NewTile(t.Position, MudWall, rng)
		t.Visible, t.Visited = visible, visited
		sealed++
	}
	return sealed
}
