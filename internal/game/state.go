// Package game ties the level, its entities and the terminal loop together.
package game

// Phase is whose move it is.
type Phase int

const (
	// PhasePlayer waits for the player to act.
	PhasePlayer Phase = iota
	// PhaseMonsters lets every NPC take one step.
	PhaseMonsters
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlayer:
		return "player"
	case PhaseMonsters:
		return "monsters"
	default:
		return "unknown"
	}
}
