// Package movement applies direction steps to entities on a level.
package movement

import (
	"math/rand"

	"github.com/samdwyer/cavewalk/internal/entity"
	"github.com/samdwyer/cavewalk/internal/world"
)

// CheckCrossableDestination reports whether a step from from in dir lands on
// an in-bounds, crossable tile.
func CheckCrossableDestination(level *world.Level, from world.Point, dir world.Direction) bool {
	return level.IsCrossable(from.Add(dir.Delta()))
}

// MoveEntity applies dir to e without any checks.
func MoveEntity(e *entity.Entity, dir world.Direction) {
	e.Position = e.Position.Add(dir.Delta())
}

// TryMove moves e one step in dir if the destination is crossable.
// Occupancy by other entities is not considered.
func TryMove(level *world.Level, e *entity.Entity, dir world.Direction) bool {
	if dir == world.DirNone || !CheckCrossableDestination(level, e.Position, dir) {
		return false
	}
	MoveEntity(e, dir)
	return true
}

// Wander picks a random delta in {-1,0,1}² and tries to step along it.
// A zero delta means the entity stays put this turn.
func Wander(level *world.Level, e *entity.Entity, rng *rand.Rand) bool {
	delta := world.Point{X: rng.Intn(3) - 1, Y: rng.Intn(3) - 1}
	return TryMove(level, e, world.Orientation(delta))
}
