package entity

import (
	"math/rand"

	"github.com/samdwyer/cavewalk/internal/gamedata"
	"github.com/samdwyer/cavewalk/internal/world"
)

// Spawn samples count random tiles and places one creature on each sample that
// is crossable. Samples landing on walls are dropped rather than retried, so
// sparse levels may get fewer than count entities.
// The creature kind comes from registry; a nil or empty registry spawns zombies.
func Spawn(level *world.Level, count int, rng *rand.Rand, registry *gamedata.CreatureRegistry) []*Entity {
	spawned := make([]*Entity, 0, count)
	for i := 0; i < count; i++ {
		idx := rng.Intn(level.Size())
		if !level.Tiles[idx].Crossable {
			continue
		}

		pos := level.PointAt(idx)
		if def := registry.SpawnRandom(rng); def != nil {
			spawned = append(spawned, NewFromDef(def, pos, rng))
		} else {
			spawned = append(spawned, New(KindZombie, pos, rng))
		}
	}
	return spawned
}
