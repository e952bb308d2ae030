package world

import (
	"math/rand"

	"github.com/cespare/xxhash/v2"
)

// Level is a complete tile map for one floor of the cave.
type Level struct {
	Grid
	Tiles []Tile
}

// NewLevel builds a level from a terrain layout of Grid.Size() kinds.
func NewLevel(grid Grid, kinds []TerrainKind, rng *rand.Rand) *Level {
	if len(kinds) != grid.Size() {
		panic("terrain layout does not match grid size")
	}
	tiles := make([]Tile, grid.Size())
	for i, kind := range kinds {
		tiles[i] = NewTile(grid.PointAt(i), kind, rng)
	}
	return &Level{Grid: grid, Tiles: tiles}
}

// At returns the tile at p. Callers must check InBounds first.
func (l *Level) At(p Point) *Tile {
	return &l.Tiles[l.Index(p)]
}

// TileAt returns a copy of the tile at p and whether p is in bounds.
func (l *Level) TileAt(p Point) (Tile, bool) {
	if !l.InBounds(p) {
		return Tile{}, false
	}
	return l.Tiles[l.Index(p)], true
}

// IsCrossable returns true if p is in bounds and can be walked on.
func (l *Level) IsCrossable(p Point) bool {
	return l.InBounds(p) && l.Tiles[l.Index(p)].Crossable
}

// IsSeeThrough returns true if p is in bounds and does not block sight.
func (l *Level) IsSeeThrough(p Point) bool {
	return l.InBounds(p) && l.Tiles[l.Index(p)].SeeThrough
}

// IsVisited returns true if p is in bounds and has been seen at least once.
func (l *Level) IsVisited(p Point) bool {
	return l.InBounds(p) && l.Tiles[l.Index(p)].Visited
}

// ResetVisibility clears the Visible flag on every tile. Visited is left untouched.
func (l *Level) ResetVisibility() {
	for i := range l.Tiles {
		l.Tiles[i].Visible = false
	}
}

// RevealAll marks every tile as visited.
func (l *Level) RevealAll() {
	for i := range l.Tiles {
		l.Tiles[i].Visited = true
	}
}

// CountKind returns how many tiles are of the given kind.
func (l *Level) CountKind(kind TerrainKind) int {
	n := 0
	for i := range l.Tiles {
		if l.Tiles[i].Kind == kind {
			n++
		}
	}
	return n
}

// CrossableCount returns the number of walkable tiles.
func (l *Level) CrossableCount() int {
	n := 0
	for i := range l.Tiles {
		if l.Tiles[i].Crossable {
			n++
		}
	}
	return n
}

// RandomCrossable returns a random walkable point, trying up to attempts samples
// before falling back to a scan from a random offset.
func (l *Level) RandomCrossable(rng *rand.Rand, attempts int) (Point, bool) {
	for i := 0; i < attempts; i++ {
		idx := rng.Intn(l.Size())
		if l.Tiles[idx].Crossable {
			return l.PointAt(idx), true
		}
	}

	start := rng.Intn(l.Size())
	for i := 0; i < l.Size(); i++ {
		idx := (start + i) % l.Size()
		if l.Tiles[idx].Crossable {
			return l.PointAt(idx), true
		}
	}
	return Point{}, false
}

// Fingerprint hashes the terrain layout. Appearance and visibility flags are ignored,
// so two levels with the same walls and floors share a fingerprint.
func (l *Level) Fingerprint() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, l.Size()+8)
	buf = append(buf,
		byte(l.Width), byte(l.Width>>8), byte(l.Width>>16), byte(l.Width>>24),
		byte(l.Height), byte(l.Height>>8), byte(l.Height>>16), byte(l.Height>>24),
	)
	for i := range l.Tiles {
		buf = append(buf, byte(l.Tiles[i].Kind))
	}
	_, _ = d.Write(buf)
	return d.Sum64()
}
