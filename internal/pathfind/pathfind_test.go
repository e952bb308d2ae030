package pathfind

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/cavewalk/internal/world"
)

// levelFromRows builds a fully explored level; '#' is wall, '?' is an
// unexplored floor tile, anything else explored floor.
func levelFromRows(rows ...string) *world.Level {
	grid := world.NewGrid(len(rows[0]), len(rows))
	kinds := make([]world.TerrainKind, 0, grid.Size())
	for _, row := range rows {
		for _, ch := range row {
			if ch == '#' {
				kinds = append(kinds, world.MudWall)
			} else {
				kinds = append(kinds, world.StoneFloor)
			}
		}
	}
	level := world.NewLevel(grid, kinds, rand.New(rand.NewSource(1)))
	level.RevealAll()
	for y, row := range rows {
		for x, ch := range row {
			if ch == '?' {
				level.At(world.Point{X: x, Y: y}).Visited = false
			}
		}
	}
	return level
}

func openLevel(w, h int) *world.Level {
	level := world.NewGenerator(rand.New(rand.NewSource(1))).Generate(context.Background(), w, h, world.StrategyFloor)
	level.RevealAll()
	return level
}

func assertWalkable(t *testing.T, level *world.Level, start world.Point, path Path) {
	t.Helper()
	prev := start
	for _, p := range path {
		assert.True(t, prev.IsAdjacent(p), "step %v -> %v is not adjacent", prev, p)
		assert.True(t, level.IsCrossable(p), "step onto blocked %v", p)
		assert.True(t, level.IsVisited(p), "step onto unexplored %v", p)
		prev = p
	}
}

func TestFindPathSameCell(t *testing.T) {
	level := openLevel(10, 10)
	p := world.Point{X: 5, Y: 5}
	assert.Empty(t, FindPath(level, p, p))
}

func TestFindPathStraightLine(t *testing.T) {
	level := openLevel(10, 10)
	start := world.Point{X: 0, Y: 0}
	goal := world.Point{X: 2, Y: 0}

	path := FindPath(level, start, goal)
	require.Len(t, path, 2)
	assert.Equal(t, goal, path[len(path)-1])
	assertWalkable(t, level, start, path)
}

func TestFindPathDiagonal(t *testing.T) {
	level := openLevel(10, 10)
	start := world.Point{X: 1, Y: 1}
	goal := world.Point{X: 6, Y: 6}

	path := FindPath(level, start, goal)
	require.Len(t, path, 5)
	assert.Equal(t, goal, path[4])
	assertWalkable(t, level, start, path)
}

func TestFindPathTieGoesToEastFirst(t *testing.T) {
	// North and east of the start score the same; east is expanded first.
	level := levelFromRows(
		"...",
		".#.",
		"...",
	)
	start := world.Point{X: 0, Y: 2}
	goal := world.Point{X: 2, Y: 0}

	path := FindPath(level, start, goal)
	assert.Equal(t, Path{{X: 1, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 0}}, path)
}

func TestFindPathTieGoesToSouthEastBeforeNorthEast(t *testing.T) {
	level := levelFromRows(
		"...",
		".#.",
		"...",
	)
	start := world.Point{X: 0, Y: 1}
	goal := world.Point{X: 2, Y: 1}

	assert.Equal(t, Path{{X: 1, Y: 2}, {X: 2, Y: 1}}, FindPath(level, start, goal))
}

func TestFindPathAroundWall(t *testing.T) {
	level := levelFromRows(
		"......",
		"..#...",
		"..#...",
		"..#...",
		"......",
	)
	start := world.Point{X: 0, Y: 2}
	goal := world.Point{X: 5, Y: 2}

	path := FindPath(level, start, goal)
	require.NotEmpty(t, path)
	assert.Equal(t, goal, path[len(path)-1])
	assertWalkable(t, level, start, path)
}

func TestFindPathRejectsGoal(t *testing.T) {
	level := levelFromRows(
		"...#",
		"...?",
	)
	start := world.Point{X: 0, Y: 0}

	tests := []struct {
		name string
		goal world.Point
	}{
		{"wall", world.Point{X: 3, Y: 0}},
		{"unexplored", world.Point{X: 3, Y: 1}},
		{"out of bounds", world.Point{X: 9, Y: 0}},
		{"negative", world.Point{X: -1, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, FindPath(level, start, tt.goal))
			assert.Empty(t, Trace(level, start, tt.goal))
		})
	}
}

func TestFindPathDoesNotCrossUnexplored(t *testing.T) {
	level := levelFromRows(
		"..?..",
		"..?..",
		"..?..",
	)
	assert.Empty(t, FindPath(level, world.Point{X: 0, Y: 1}, world.Point{X: 4, Y: 1}))
}

func TestFindPathEnclosedGoal(t *testing.T) {
	level := levelFromRows(
		".......",
		"....###",
		"....#.#",
		"....###",
	)
	start := world.Point{X: 0, Y: 0}
	goal := world.Point{X: 5, Y: 2}

	assert.Empty(t, FindPath(level, start, goal))

	// The raw chain still leads back to the start from wherever the search stopped.
	chain := Trace(level, start, goal)
	require.NotEmpty(t, chain)
	assert.NotEqual(t, goal, chain[0])
	assert.Equal(t, start, chain[len(chain)-1])
}

func TestTraceOrder(t *testing.T) {
	level := openLevel(5, 1)
	chain := Trace(level, world.Point{X: 0, Y: 0}, world.Point{X: 3, Y: 0})
	assert.Equal(t, []world.Point{{X: 3, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}}, chain)
}

func TestFinderBudget(t *testing.T) {
	level := openLevel(30, 30)
	start := world.Point{X: 0, Y: 0}
	goal := world.Point{X: 29, Y: 29}

	assert.Empty(t, Finder{MaxCycles: 1}.FindPath(level, start, goal))
	assert.Empty(t, Finder{MaxCycles: 0}.Trace(level, start, goal))
	assert.NotEmpty(t, NewFinder().FindPath(level, start, goal))
}

func TestFindPathOnCaves(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		level := world.NewGenerator(rand.New(rand.NewSource(seed))).Generate(context.Background(), 40, 30, world.StrategyCave)
		level.RevealAll()

		rng := rand.New(rand.NewSource(seed))
		start, ok := level.RandomCrossable(rng, 100)
		require.True(t, ok)
		reachable := level.Reachable(start)

		for i := 0; i < 20; i++ {
			goal, ok := level.RandomCrossable(rng, 100)
			require.True(t, ok)

			path := FindPath(level, start, goal)
			if goal == start || !reachable.Has(goal) {
				assert.Empty(t, path, "seed %d goal %v", seed, goal)
				continue
			}
			if len(path) == 0 {
				// budget exhausted on a long winding route
				continue
			}
			assert.Equal(t, goal, path[len(path)-1])
			assertWalkable(t, level, start, path)
		}
	}
}
