package gamedata

import "github.com/gdamore/tcell/v2"

// CreatureDef defines a creature kind loaded from JSON.
type CreatureDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "zombie")
	Name        string `json:"name"`        // Display name (e.g., "Zombie")
	Glyph       string `json:"glyph"`       // Single character for rendering (e.g., "Z")
	Color       string `json:"color"`       // Hex color code (e.g., "#966450")
	Gold        int    `json:"gold"`        // Gold carried when spawned
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency (0 = never spawned)
}

// GlyphRune returns the glyph as a rune for rendering.
func (c *CreatureDef) GlyphRune() rune {
	for _, r := range c.Glyph {
		return r
	}
	return '?'
}

// TCellColor returns the color as a tcell.Color.
func (c *CreatureDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(c.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// CreaturesFile represents the structure of creatures.json.
type CreaturesFile struct {
	Creatures []CreatureDef `json:"creatures"`
}

// LoadCreatures loads creature definitions from the embedded creatures.json file.
func LoadCreatures() ([]CreatureDef, error) {
	file, err := Load[CreaturesFile]("creatures.json")
	if err != nil {
		return nil, err
	}
	return file.Creatures, nil
}
