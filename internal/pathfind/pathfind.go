// Package pathfind finds walking routes across the explored part of a level.
//
// The search is A* over the eight neighbours of a tile. Step cost is 1 and the
// heuristic is the squared straight-line distance to the goal, which favours
// heading straight at the target over strict optimality. Only tiles the
// player has already visited are considered, so routes never leak
// information about unexplored terrain.
package pathfind

import (
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/cavewalk/internal/world"
)

// DefaultMaxCycles bounds how many nodes a single search may expand.
const DefaultMaxCycles = 4000

// neighbours is the expansion order. Ties on f go to the node created first,
// so this order decides between equally scored routes.
var neighbours = [8]world.Point{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: 1, Y: 1},
	{X: 1, Y: -1},
	{X: -1, Y: 1},
	{X: -1, Y: -1},
}

// Path is a sequence of steps from (but excluding) the start up to and
// including the goal. The caller owns it.
type Path []world.Point

// Finder runs searches with a fixed expansion budget.
type Finder struct {
	MaxCycles int
}

// NewFinder returns a finder with the default budget.
func NewFinder() Finder {
	return Finder{MaxCycles: DefaultMaxCycles}
}

type node struct {
	pos    world.Point
	g, h   int
	f      int
	parent int // index into the node list, -1 for the start
}

// FindPath returns the route from start to goal using the default budget.
func FindPath(level *world.Level, start, goal world.Point) Path {
	return NewFinder().FindPath(level, start, goal)
}

// Trace returns the raw parent chain using the default budget.
func Trace(level *world.Level, start, goal world.Point) []world.Point {
	return NewFinder().Trace(level, start, goal)
}

// FindPath returns the steps leading from start to goal, excluding start.
// The result is empty when start equals goal, when the goal is unreachable
// through visited tiles, or when the search runs out of budget.
func (f Finder) FindPath(level *world.Level, start, goal world.Point) Path {
	chain := f.Trace(level, start, goal)
	if len(chain) < 2 || chain[0] != goal {
		return nil
	}

	path := make(Path, 0, len(chain)-1)
	for i := len(chain) - 2; i >= 0; i-- {
		path = append(path, chain[i])
	}
	return path
}

// Trace runs the search and returns the parent chain of the last expanded
// node, ordered goal-first and ending with start.
//
// If the goal is out of bounds, blocked or unexplored, or if the budget is
// exceeded, Trace returns nil. When the frontier runs dry before reaching the
// goal the chain of the last expanded node is still returned; its first
// element is then something other than goal.
func (f Finder) Trace(level *world.Level, start, goal world.Point) []world.Point {
	if !level.IsCrossable(goal) || !level.IsVisited(goal) {
		return nil
	}

	nodes := make([]node, 0, 64)
	// Ties on f go to the node created first.
	open := heap.New[int](func(a, b int) bool {
		if nodes[a].f != nodes[b].f {
			return nodes[a].f < nodes[b].f
		}
		return a < b
	})
	closed := mapset.New[world.Point]()
	openG := make(map[world.Point]int)

	push := func(p world.Point, g, parent int) {
		h := p.DistanceSquared(goal)
		nodes = append(nodes, node{pos: p, g: g, h: h, f: g + h, parent: parent})
		open.Push(len(nodes) - 1)
		if best, ok := openG[p]; !ok || g < best {
			openG[p] = g
		}
	}
	push(start, 0, -1)

	last := -1
	for cycles := 1; open.Size() > 0; cycles++ {
		if cycles > f.MaxCycles {
			return nil
		}

		id, _ := open.Pop()
		current := nodes[id]
		if closed.Has(current.pos) {
			continue
		}
		closed.Put(current.pos)
		delete(openG, current.pos)
		last = id

		if current.pos == goal {
			break
		}

		for _, delta := range neighbours {
			next := current.pos.Add(delta)
			if !level.IsCrossable(next) || !level.IsVisited(next) || closed.Has(next) {
				continue
			}
			g := current.g + 1
			if best, ok := openG[next]; ok && best < g {
				continue
			}
			push(next, g, id)
		}
	}

	var chain []world.Point
	for id := last; id >= 0; id = nodes[id].parent {
		chain = append(chain, nodes[id].pos)
	}
	return chain
}
