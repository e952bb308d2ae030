package world

import (
	"math/rand"

	"github.com/gdamore/tcell/v2"
)

// TerrainKind identifies what a tile is made of.
type TerrainKind int

const (
	// TerrainNone is an uninitialised cell. It is open and uses the fallback palette.
	TerrainNone TerrainKind = iota
	// StoneFloor is open, walkable ground.
	StoneFloor
	// StoneWall is an opaque grey wall, used by the random generator.
	StoneWall
	// MudWall is the opaque brown rock left untouched by cave diffusion.
	MudWall
)

// String returns the terrain name.
func (k TerrainKind) String() string {
	switch k {
	case TerrainNone:
		return "none"
	case StoneFloor:
		return "stone_floor"
	case StoneWall:
		return "stone_wall"
	case MudWall:
		return "mud_wall"
	default:
		return "unknown"
	}
}

// IsWall returns true for the blocking terrain kinds.
func (k TerrainKind) IsWall() bool {
	return k == StoneWall || k == MudWall
}

// Appearance is the display-only part of a tile.
type Appearance struct {
	Glyph rune
	Fg    tcell.Color
	Bg    tcell.Color
}

// AppearanceFor derives the glyph and shaded colours for a terrain kind.
// Shade jitter is drawn from rng so generation stays reproducible.
func AppearanceFor(kind TerrainKind, rng *rand.Rand) Appearance {
	switch kind {
	case StoneFloor:
		gray := between(rng, 60, 100)
		return Appearance{
			Glyph: '.',
			Fg:    tcell.NewRGBColor(gray, gray, gray),
			Bg:    tcell.NewRGBColor(0, 0, 0),
		}
	case StoneWall:
		gray := between(rng, 100, 150)
		black := between(rng, 5, 20)
		return Appearance{
			Glyph: '#',
			Fg:    tcell.NewRGBColor(black, black, black),
			Bg:    tcell.NewRGBColor(gray, gray, gray),
		}
	case MudWall:
		r := between(rng, 100, 120)
		g := between(rng, 80, 90)
		b := between(rng, 58, 65)
		black := between(rng, 5, 20)
		return Appearance{
			Glyph: '#',
			Fg:    tcell.NewRGBColor(black, black, black),
			Bg:    tcell.NewRGBColor(r, g, b),
		}
	default:
		return Appearance{
			Glyph: ' ',
			Fg:    tcell.NewRGBColor(150, 100, 150),
			Bg:    tcell.NewRGBColor(0, 0, 0),
		}
	}
}

// between returns a value in [lo, hi).
func between(rng *rand.Rand, lo, hi int32) int32 {
	return lo + rng.Int31n(hi-lo)
}

// Tile is one cell of terrain.
type Tile struct {
	Position Point
	Kind     TerrainKind
	Appearance

	Crossable  bool // Entities may step onto the tile
	SeeThrough bool // FOV rays continue past the tile

	Visible bool // Seen during the current FOV pass
	Visited bool // Seen at least once; never cleared
}

// NewTile creates a tile of the given kind at p.
func NewTile(p Point, kind TerrainKind, rng *rand.Rand) Tile {
	open := !kind.IsWall()
	return Tile{
		Position:   p,
		Kind:       kind,
		Appearance: AppearanceFor(kind, rng),
		Crossable:  open,
		SeeThrough: open,
	}
}
