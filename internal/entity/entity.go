// Package entity provides the mobile actors that live on a level.
package entity

import (
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/samdwyer/cavewalk/internal/gamedata"
	"github.com/samdwyer/cavewalk/internal/world"
)

// Kind identifies what an entity is. Values match creature IDs in gamedata.
type Kind string

const (
	KindPlayer Kind = "player"
	KindZombie Kind = "zombie"
)

// Attributes is the fixed set of per-entity data.
type Attributes struct {
	Gold int
}

// Entity is a mobile actor. Position is only changed through the movement package.
type Entity struct {
	ID       uuid.UUID
	Kind     Kind
	Name     string
	Position world.Point

	Glyph rune
	Fg    tcell.Color
	Bg    tcell.Color

	Attributes Attributes
}

// New creates an entity of a built-in kind at pos. The ID is drawn from ids.
func New(kind Kind, pos world.Point, ids io.Reader) *Entity {
	e := &Entity{
		ID:       newID(ids),
		Kind:     kind,
		Name:     string(kind),
		Position: pos,
		Glyph:    '?',
		Fg:       gamedata.MustParseHexColor("#969696"),
		Bg:       tcell.ColorDefault,
	}

	switch kind {
	case KindPlayer:
		e.Name = "You"
		e.Glyph = '@'
	case KindZombie:
		e.Name = "Zombie"
		e.Glyph = 'Z'
		e.Fg = gamedata.MustParseHexColor("#966450")
	}
	return e
}

// NewFromDef creates an entity from a data-driven creature definition.
// The ID is drawn from ids so that seeded runs produce the same entities.
func NewFromDef(def *gamedata.CreatureDef, pos world.Point, ids io.Reader) *Entity {
	return &Entity{
		ID:       newID(ids),
		Kind:     Kind(def.ID),
		Name:     def.Name,
		Position: pos,
		Glyph:    def.GlyphRune(),
		Fg:       def.TCellColor(),
		Bg:       tcell.ColorDefault,
		Attributes: Attributes{
			Gold: def.Gold,
		},
	}
}

// At returns true if the entity stands on p.
func (e *Entity) At(p world.Point) bool {
	return e.Position == p
}

// newID draws a random UUID from ids, falling back to the system source if
// ids fails.
func newID(ids io.Reader) uuid.UUID {
	id, err := uuid.NewRandomFromReader(ids)
	if err != nil {
		return uuid.New()
	}
	return id
}
