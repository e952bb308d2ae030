package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/cavewalk/internal/entity"
	"github.com/samdwyer/cavewalk/internal/fov"
	"github.com/samdwyer/cavewalk/internal/world"
)

// HUDWidth is the number of columns reserved left of the map for the status panel.
const HUDWidth = 20

var (
	hudStyle    = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	pathColor   = tcell.NewRGBColor(90, 90, 0)
	cursorColor = tcell.NewRGBColor(160, 160, 0)
)

// Frame is everything needed to draw one screen.
type Frame struct {
	Level   *world.Level
	Player  *entity.Entity
	NPCs    []*entity.Entity
	Visible mapset.Set[world.Point]

	Path         []world.Point
	Cursor       world.Point
	CursorActive bool

	HUD []string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// ScreenToMap converts a terminal cell to a map position.
func ScreenToMap(x, y int) world.Point {
	return world.Point{X: x - HUDWidth, Y: y}
}

// Render draws f and flushes it to the terminal.
//
// Tiles in view use their own colours, tiles only remembered are dimmed and
// tiles never seen stay blank. NPCs are drawn only while in view.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	level := f.Level
	for i, tile := range level.Tiles {
		var style tcell.Style
		switch {
		case tile.Visible:
			style = tcell.StyleDefault.Foreground(tile.Fg).Background(tile.Bg)
		case tile.Visited:
			style = tcell.StyleDefault.Foreground(fov.Dim(tile.Fg)).Background(fov.Dim(tile.Bg))
		default:
			continue
		}
		p := level.PointAt(i)
		r.put(p, tile.Glyph, style)
	}

	for _, npc := range f.NPCs {
		if !f.Visible.Has(npc.Position) {
			continue
		}
		r.putEntity(level, npc)
	}
	if f.Player != nil {
		r.putEntity(level, f.Player)
	}

	for _, step := range f.Path {
		r.highlight(level, step, pathColor)
	}
	if f.CursorActive {
		r.highlight(level, f.Cursor, cursorColor)
	}

	for y, line := range f.HUD {
		r.RenderMessage(line, y)
	}

	r.screen.Show()
}

// RenderMessage writes msg into the status panel on row y, clipped to the panel.
func (r *Renderer) RenderMessage(msg string, y int) {
	x := 0
	for _, ch := range msg {
		if x >= HUDWidth {
			break
		}
		r.screen.SetContent(x, y, ch, hudStyle)
		x++
	}
}

func (r *Renderer) put(p world.Point, glyph rune, style tcell.Style) {
	r.screen.SetContent(p.X+HUDWidth, p.Y, glyph, style)
}

// putEntity draws e over the background of the tile it stands on.
func (r *Renderer) putEntity(level *world.Level, e *entity.Entity) {
	tile, ok := level.TileAt(e.Position)
	if !ok {
		return
	}
	bg := e.Bg
	if bg == tcell.ColorDefault {
		bg = tile.Bg
	}
	r.put(e.Position, e.Glyph, tcell.StyleDefault.Foreground(e.Fg).Background(bg))
}

// highlight tints the background of an explored cell, keeping whatever glyph
// is already drawn there.
func (r *Renderer) highlight(level *world.Level, p world.Point, bg tcell.Color) {
	tile, ok := level.TileAt(p)
	if !ok {
		return
	}
	glyph := ' '
	fg := tcell.ColorWhite
	if tile.Visited {
		glyph = tile.Glyph
		fg = tile.Fg
	}
	r.put(p, glyph, tcell.StyleDefault.Foreground(fg).Background(bg))
}
