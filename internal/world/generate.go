package world

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cavewalk/internal/telemetry"
)

const (
	// Default level dimensions
	DefaultWidth  = 64
	DefaultHeight = 48

	// DefaultWallPercent is the wall chance of the random strategy, out of 101 rolls.
	DefaultWallPercent = 1

	// Retry policy parameters
	DefaultMinCoverage = 0.9
	DefaultMaxTries    = 8
)

// Strategy selects how a level is laid out.
type Strategy int

const (
	// StrategyCave grows floor out of one seed per sector.
	StrategyCave Strategy = iota
	// StrategyRandom scatters stone walls independently over open floor.
	StrategyRandom
	// StrategyFloor produces an all-open level.
	StrategyFloor
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyCave:
		return "cave"
	case StrategyRandom:
		return "random"
	case StrategyFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a strategy name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "cave":
		return StrategyCave, nil
	case "random":
		return StrategyRandom, nil
	case "floor":
		return StrategyFloor, nil
	default:
		return StrategyCave, fmt.Errorf("unknown generation strategy %q", name)
	}
}

// Connectivity is the policy applied to cave levels whose open areas are not
// all connected. Diffusion does not guarantee connectivity between sectors.
type Connectivity int

const (
	// ConnectivityAccept keeps whatever the generator produced; isolated
	// pockets stay in the level.
	ConnectivityAccept Connectivity = iota
	// ConnectivityRetry regenerates until one region holds MinCoverage of the
	// open tiles, up to MaxTries attempts.
	ConnectivityRetry
	// ConnectivitySeal walls over every pocket not reachable from an anchor
	// chosen by the caller (see Level.SealUnreachable).
	ConnectivitySeal
)

// String returns the policy name.
func (c Connectivity) String() string {
	switch c {
	case ConnectivityAccept:
		return "accept"
	case ConnectivityRetry:
		return "retry"
	case ConnectivitySeal:
		return "seal"
	default:
		return "unknown"
	}
}

// ParseConnectivity converts a policy name into a Connectivity.
func ParseConnectivity(name string) (Connectivity, error) {
	switch name {
	case "accept":
		return ConnectivityAccept, nil
	case "retry":
		return ConnectivityRetry, nil
	case "seal":
		return ConnectivitySeal, nil
	default:
		return ConnectivityAccept, fmt.Errorf("unknown connectivity policy %q", name)
	}
}

// CaveParams tunes the diffusion generator.
// 8/6/12 gives large connected caverns; 16/12/5 gives a maze of small pockets.
type CaveParams struct {
	SectorsX int // Sectors across
	SectorsY int // Sectors down
	Cycles   int // Growth rounds
}

// DefaultCaveParams returns the standard cave tuning.
func DefaultCaveParams() CaveParams {
	return CaveParams{SectorsX: 8, SectorsY: 6, Cycles: 12}
}

// ErrPoorlyConnected is returned by GenerateConnected when no attempt reached
// the required coverage.
var ErrPoorlyConnected = errors.New("level is poorly connected")

// Generator produces levels from an explicit random source.
type Generator struct {
	Cave        CaveParams
	WallPercent int
	MinCoverage float64
	MaxTries    uint

	rng *rand.Rand
}

// NewGenerator creates a generator with default parameters drawing from rng.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{
		Cave:        DefaultCaveParams(),
		WallPercent: DefaultWallPercent,
		MinCoverage: DefaultMinCoverage,
		MaxTries:    DefaultMaxTries,
		rng:         rng,
	}
}

// Generate creates a level of the given size using strategy.
func (g *Generator) Generate(ctx context.Context, width, height int, strategy Strategy) *Level {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "level.generate")
	defer span.End()

	startTime := time.Now()
	grid := NewGrid(width, height)

	var kinds []TerrainKind
	switch strategy {
	case StrategyRandom:
		kinds = g.randomLayout(grid)
	case StrategyFloor:
		kinds = fill(grid, StoneFloor)
	default:
		kinds = g.caveLayout(grid)
	}
	level := NewLevel(grid, kinds, g.rng)

	floors := level.CrossableCount()
	span.SetAttributes(
		attribute.Int("level.width", width),
		attribute.Int("level.height", height),
		attribute.String("level.strategy", strategy.String()),
		attribute.Int("level.floor_count", floors),
		attribute.Int64("level.generation_ms", time.Since(startTime).Milliseconds()),
	)
	slog.Debug("level generated",
		"strategy", strategy.String(),
		"width", width,
		"height", height,
		"floors", floors,
	)

	return level
}

// GenerateConnected regenerates until the largest region covers MinCoverage of
// the open tiles. After MaxTries failures it returns the last level together
// with ErrPoorlyConnected, so callers can still use it.
func (g *Generator) GenerateConnected(ctx context.Context, width, height int, strategy Strategy) (*Level, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "level.generate_connected")
	defer span.End()

	var last *Level
	attempts := 0
	level, err := backoff.Retry(ctx, func() (*Level, error) {
		attempts++
		last = g.Generate(ctx, width, height, strategy)
		share := last.LargestRegionShare()
		if share < g.MinCoverage {
			return nil, fmt.Errorf("%w: largest region holds %.2f of open tiles", ErrPoorlyConnected, share)
		}
		return last, nil
	},
		backoff.WithBackOff(&backoff.ZeroBackOff{}),
		backoff.WithMaxTries(g.MaxTries),
	)

	span.SetAttributes(attribute.Int("level.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		return last, err
	}
	return level, nil
}

// fill returns a layout where every cell has the same kind.
func fill(grid Grid, kind TerrainKind) []TerrainKind {
	kinds := make([]TerrainKind, grid.Size())
	for i := range kinds {
		kinds[i] = kind
	}
	return kinds
}

// randomLayout scatters stone walls over floor with no structural guarantees.
func (g *Generator) randomLayout(grid Grid) []TerrainKind {
	kinds := make([]TerrainKind, grid.Size())
	for i := range kinds {
		if g.rng.Intn(101) < g.WallPercent {
			kinds[i] = StoneWall
		} else {
			kinds[i] = StoneFloor
		}
	}
	return kinds
}

// caveLayout seeds one floor cell per sector, then lets every floor cell push
// into one random orthogonal neighbour per cycle. Untouched cells stay mud wall.
func (g *Generator) caveLayout(grid Grid) []TerrainKind {
	kinds := fill(grid, MudWall)

	for _, s := range CaveSectors(grid, g.Cave) {
		seed := Point{
			X: s.X + g.seedOffset(s.Width),
			Y: s.Y + g.seedOffset(s.Height),
		}
		kinds[grid.Index(seed)] = StoneFloor
	}

	walk := Cardinals()
	for cycle := 0; cycle < g.Cave.Cycles; cycle++ {
		next := slices.Clone(kinds)
		for i, kind := range kinds {
			if kind != StoneFloor {
				continue
			}
			p := grid.PointAt(i).Add(walk[g.rng.Intn(len(walk))].Delta())
			if grid.InBounds(p) {
				next[grid.Index(p)] = StoneFloor
			}
		}
		kinds = next
	}

	return kinds
}

// seedOffset picks a position inside a sector span, avoiding its first row or
// column when the sector is wide enough.
func (g *Generator) seedOffset(span int) int {
	if span <= 1 {
		return 0
	}
	return 1 + g.rng.Intn(span-1)
}
