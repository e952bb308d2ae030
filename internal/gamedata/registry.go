package gamedata

import (
	"errors"
	"math/rand"
)

// CreatureRegistry holds loaded creature definitions and provides spawning utilities.
type CreatureRegistry struct {
	creatures   []CreatureDef
	totalWeight int
}

// NewCreatureRegistry creates a registry from loaded creature definitions.
func NewCreatureRegistry(creatures []CreatureDef) *CreatureRegistry {
	totalWeight := 0
	for _, c := range creatures {
		if c.SpawnWeight > 0 {
			totalWeight += c.SpawnWeight
		}
	}
	return &CreatureRegistry{
		creatures:   creatures,
		totalWeight: totalWeight,
	}
}

// LoadCreatureRegistry loads and creates a registry from the embedded creatures.json.
func LoadCreatureRegistry() (*CreatureRegistry, error) {
	creatures, err := LoadCreatures()
	if err != nil {
		return nil, err
	}
	if len(creatures) == 0 {
		return nil, errors.New("no creatures loaded from creatures.json")
	}
	return NewCreatureRegistry(creatures), nil
}

// MustLoadCreatureRegistry loads a registry, panicking on error.
func MustLoadCreatureRegistry() *CreatureRegistry {
	registry, err := LoadCreatureRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a random creature definition using weighted probability.
// Creatures with a zero weight (such as the player) are never selected.
// Returns nil when nothing is spawnable.
func (r *CreatureRegistry) SpawnRandom(rng *rand.Rand) *CreatureDef {
	if r == nil || r.totalWeight <= 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.creatures {
		if r.creatures[i].SpawnWeight <= 0 {
			continue
		}
		cumulative += r.creatures[i].SpawnWeight
		if roll < cumulative {
			return &r.creatures[i]
		}
	}
	return nil
}

// GetByID returns the creature definition with the given ID, or nil if not found.
func (r *CreatureRegistry) GetByID(id string) *CreatureDef {
	if r == nil {
		return nil
	}
	for i := range r.creatures {
		if r.creatures[i].ID == id {
			return &r.creatures[i]
		}
	}
	return nil
}

// Count returns the number of creature kinds in the registry.
func (r *CreatureRegistry) Count() int {
	if r == nil {
		return 0
	}
	return len(r.creatures)
}
